// Package search is the heuristic trial-based search engine: a lazily
// grown reachable-state graph annotated with admissible value bounds,
// the Bellman-backup operator over it, and the four trial strategies
// (RTDP, LRTDP, HDP, FRTDP) that share both.
//
// What:
//
//   - Graph — interning node table rooted at the problem's initial
//     state; nodes carry [lower, upper] bounds, per-action Q-entries
//     with cached outcome edges, and solved/Tarjan labels.
//   - Core — the shared trial driver: PlanInit / PlanFixedTime /
//     ChooseAction / ValueAt, wall-clock budgeting, counters, and the
//     logarithmic bounds-log schedule.
//   - StrategyKind — RTDP (stochastic, unlabeled), LRTDP (stochastic
//     with checkSolved labeling), HDP (depth-first with Tarjan SCC
//     labeling, optional HDP+L lower bounds), FRTDP (focused
//     deterministic descent on the weighted bound gap).
//
// Why:
//
//   - Value iteration over the full state space is hopeless for large
//     MDPs; trial-based search touches only states reachable under
//     near-greedy behavior from a known start, and admissible bounds
//     turn simulated trials into a convergent anytime planner.
//
// Invariants:
//
//   - lbVal ≤ V*(s) ≤ ubVal at every node, at all times.
//   - Immediately after update(n): n.ubVal = max_a Q[a].ubVal (and the
//     lower-bound analogue when tracked). Between backups the node's
//     cached bounds may be stale relative to its children.
//   - Admissible seeds make upper bounds non-increasing and lower
//     bounds non-decreasing across backups. A backup that would move a
//     bound the wrong way past numerical slack is clamped at its
//     previous value in release mode; WithDebugChecks() turns the clamp
//     into ErrBoundViolation.
//   - A node, once solved, stays solved.
//   - Argmax ties break to the smallest action index and outcomes are
//     walked in ascending id, so runs are bit-reproducible given a
//     fixed problem, fixed bounds, and fixed seed.
//
// Concurrency:
//
//   - A Core is strictly single-threaded: one trial runs to completion
//     on the caller's goroutine and the only interruption point is the
//     deadline poll between trials. Independent Cores in separate
//     goroutines are fine; they share nothing.
//
// Options:
//
//   - WithTargetPrecision(ε)      — root bound gap to plan to (default 1e-3).
//   - WithSeed(s)                 — PRNG seed for RTDP/LRTDP sampling.
//   - WithMaxTrialDepth(n)        — stochastic descent cap (default 1000).
//   - WithDebugChecks()           — fatal instead of clamped bound violations.
//   - WithHDPLowerBound()         — HDP+L variant.
//   - WithFRTDPQualityFactor(f)   — occupancy-weight stop fraction.
//   - WithFRTDPInitialDepth(d), WithFRTDPDepthGrowth(g) — adaptive depth bound.
//   - WithBoundsLog(w, lo, hi, k) — "elapsed lower upper" emission schedule.
//
// Errors:
//
//   - ErrNilProblem, ErrNilBounds, ErrUnknownStrategy — construction.
//   - ErrNotInitialized — planning before PlanInit.
//   - ErrReExpand — Expand on an interior node (engine bug).
//   - ErrBoundViolation — inadmissible seed bounds under debug checks.
//   - ErrLowerBoundRequired — LRTDP/FRTDP/HDP+L over an upper-only facade.
//   - ErrBadPrecision, ErrBadDepth — option misuse (panic in constructors).
package search
