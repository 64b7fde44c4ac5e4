package payment

// HandleRef is the serializable form of a payment handle, for callers
// outside the process. A ref only designates a payment; resolving it
// against the wrong ledger, or after the payment was consumed, yields
// ErrUnknownPayment.
type HandleRef struct {
	Index      uint64 `json:"index"`
	Generation uint64 `json:"generation"`
}

// Ref returns the payment's serializable form.
func (p Payment) Ref() HandleRef {
	return HandleRef{Index: p.index, Generation: p.generation}
}

// Payment converts the ref back into a handle.
func (r HandleRef) Payment() Payment {
	return Payment{index: r.Index, generation: r.Generation}
}
