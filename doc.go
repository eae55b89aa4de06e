// Package zmdp solves sequential decision problems — MDPs and
// belief-MDP views of POMDPs — with heuristic search value iteration:
// admissible upper (and optionally lower) bounds on the optimal value
// function, maintained over only the states reachable from a known
// start and tightened through simulated trials.
//
// What you get:
//
//	core/    — the Problem and AbstractBound contracts a domain implements
//	search/  — the trial engine: interned node graph, Bellman backups,
//	           and the RTDP, LRTDP, HDP and FRTDP strategies
//	bounds/  — PointBounds (scalar, MDPs) and ConvexBounds
//	           (alpha vectors + sawtooth, belief-MDPs)
//	solver/  — configuration (strategy, value representation, precision,
//	           schedules) and one-call assembly of the above
//
// Quick sketch:
//
//	s, err := solver.New(problem, solver.DefaultConfig())
//	if err != nil { ... }
//	if err := s.PlanInit(); err != nil { ... }
//	converged, err := s.PlanFixedTime(10) // plan for ten seconds
//	a, err := s.ChooseAction(problem.InitialState())
//
// Planning is anytime: every PlanFixedTime call tightens the root's
// [lower, upper] interval and may be resumed after budget exhaustion;
// ChooseAction is meaningful at any point in between.
//
// Everything is single-threaded by design — one planner, one goroutine;
// run independent planners concurrently if you need parallelism.
package zmdp
