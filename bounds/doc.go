// Package bounds provides the value-function representations consumed
// by the search engine: scalar point bounds for MDPs and the convex
// (sawtooth / alpha-vector) representation for belief-MDPs, plus the
// trivial admissible estimators most domains start from.
//
// What:
//
//   - PointBounds — one admissible lower and one admissible upper
//     estimator, queried per state; the standard facade for MDPs.
//   - ConvexBounds — belief-MDP facade: the lower bound is a set of
//     alpha vectors (max of linear functions, admissible everywhere by
//     convexity), the upper bound a sawtooth over corner values plus
//     support points (min of convex interpolations). Scalar queries and
//     the per-node update contract are identical to PointBounds; vector
//     insertions ride the same UpdateNode call.
//   - Constant / WorstCase / Horizon — trivial admissible estimators:
//     a constant (0 is the usual trivial upper bound for cost
//     problems), the discounted worst case −maxCost/(1−γ), and the
//     finite-horizon worst case −maxCost·H for undiscounted problems.
//
// Why:
//
//   - The engine only ever needs scalar bounds at nodes, but POMDP
//     value functions generalize across beliefs; keeping the
//     representation behind one facade lets the same four strategies
//     plan over either without knowing which is wired.
//
// Errors:
//
//   - ErrNilBound      if PointBounds is built without both estimators.
//   - ErrNotBelief     if ConvexBounds meets a state that carries no
//     belief vector.
//   - ErrDimension     if a belief vector's length disagrees with the
//     problem's state-space size.
//   - ErrNotInitialized if ConvexBounds is queried or updated before
//     Initialize (PointBounds defers to its estimators and never
//     returns it).
package bounds
