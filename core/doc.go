// Package core defines the contracts a sequential decision problem must
// satisfy to be solved by the zmdp search engine, plus the small shared
// value types those contracts exchange.
//
// What:
//
//   - Problem — describes an MDP: discount, initial state, terminality,
//     per-state action counts, and per-(state,action) outcome
//     distributions with immediate rewards.
//   - BeliefProblem — a Problem whose states are beliefs over a finite
//     underlying state space (the belief-MDP view of a POMDP).
//   - AbstractBound — an admissible scalar estimator of the optimal
//     value function, queried at newly discovered states.
//   - State — opaque, interning-friendly state handle.
//   - ValueInterval — a [lower, upper] sandwich around V*.
//
// Why:
//
//   - The search engine never enumerates the full state space; it grows
//     the reachable fragment on demand through these contracts. Keeping
//     the contracts in one leaf package lets problem domains and bound
//     heuristics evolve independently of the search strategies.
//
// Conventions:
//
//   - Action indices run 0..NumActions(s)-1; outcome ids run
//     0..NumOutcomes-1 for a given (state, action). Both are dense.
//   - Outcome lists may be sparse: an id absent from the returned slice
//     carries zero probability.
//   - Probabilities of a populated distribution must sum to 1 within
//     DistributionEps.
//
// Errors (sentinel):
//
//   - ErrBadDiscount     if a discount factor lies outside (0, 1].
//   - ErrActionRange     if an action index is outside [0, NumActions).
//   - ErrBadDistribution if outcome probabilities are negative or do not
//     sum to 1 within DistributionEps.
//   - ErrNaNReward       if an immediate reward is NaN.
//
// All four indicate precondition violations by the problem or its
// caller; the search engine reports them and never attempts repair.
package core
