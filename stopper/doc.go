// SPDX-License-Identifier: MIT

// Package stopper implements early stopping for a training loop that is
// driven from outside this module.
//
// What:
//
//   - Logic: patience bookkeeping over a stream of (epoch, metric) reports.
//   - EarlyStopper: evaluates a model every Frequency epochs through an
//     Evaluator, checkpoints the best state, and restores it on stop.
//
// Contracts (implemented by the caller):
//
//   - Evaluator, MetricResults: ranking evaluation of a model.
//   - ModelState: serialisable model weights.
//   - Tracker: receives every flattened evaluation result.
//
// Invariants:
//
//   - epochs must be reported in increasing order; ReportResult rejects
//     an epoch ≤ the best epoch with ErrEpochOrder.
//   - a result is an improvement only if it is strictly better AND not
//     within RelativeDelta of the best value.
//   - the checkpoint always holds the state of the best epoch so far.
package stopper
