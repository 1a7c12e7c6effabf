// Package refund defines the refund request status workflow.
//
// It is a second instance of the generic workflow engine with its own table:
// a request is reviewed, approved or rejected, and approved refunds are paid
// out. A failed payout can be retried. Any open request can be cancelled.
package refund
