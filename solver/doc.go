// Package solver assembles problems, value representations, and trial
// strategies into ready-to-run planners, and owns the recognized
// configuration surface.
//
// What:
//
//   - Strategy / ValueRepr — enumerated variants with string forms
//     (rtdp, lrtdp, hdp, frtdp; point, convex).
//   - Config — the full option record with Validate and defaults
//     (FRTDP, point, ε = 1e-3, schedule orders 0..3).
//   - LoadConfig / LoadConfigFromViper — file- and environment-backed
//     loading (ZMDP_* variables override file keys).
//   - New — wires the facade and strategy; Solver exposes PlanInit,
//     Plan/PlanFixedTime, ChooseAction, ValueAt, and counters.
//
// Compatibility rules enforced at New:
//
//   - valueRepr=convex requires a belief problem with convex seeding
//     support (bounds.ConvexSeeder), else ErrConvexRequiresBelief.
//   - useHeuristic=true requires WithUpperBound, else
//     ErrHeuristicMissing.
//   - LRTDP, FRTDP and HDP+L require a representation with a lower bound;
//     both shipped representations carry one.
//
// All solver state is per-instance: debug checks, the HDP+L switch,
// and the PRNG seed travel through Config, never through process-wide
// globals.
//
// Errors:
//
//   - ErrNilProblem, ErrUnknownStrategy, ErrUnknownValueRepr,
//     ErrConvexRequiresBelief, ErrHeuristicMissing, ErrBadPrecision,
//     ErrBadSchedule — all configuration errors, surfaced before any
//     planning begins.
package solver
