package payments

import (
	restate "github.com/restatedev/sdk-go"
)

// PaymentRun executes a single standing payment, keyed by its batch-stable
// payment id. Retries are bounded to the send-payment activity; once those
// are exhausted the workflow ends Failed carrying the last error. There is
// no compensation here: a failed send means no charge is assumed to have
// happened.
type PaymentRun struct{}

func (PaymentRun) Run(ctx restate.WorkflowContext, rec PaymentRecord) (SendPaymentResult, error) {
	ctx.Log().Info("making payment",
		"paymentId", restate.Key(ctx),
		"amountPence", rec.AmountPence,
		"recipient", rec.RecipientID)

	result, err := restate.Service[SendPaymentResult](ctx, LedgerService, "SendPayment").
		Request(rec)
	if err != nil {
		ctx.Log().Error("payment failed", "paymentId", restate.Key(ctx), "error", err)
		return SendPaymentResult{}, err
	}

	ctx.Log().Info("payment complete",
		"paymentId", restate.Key(ctx),
		"transactionId", result.TransactionID)
	return result, nil
}
