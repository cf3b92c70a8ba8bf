package models

// Transaction-detail codes of a partial redemption.
const (
	RedemptionCodeShares    = "Redemption_Shares"
	RedemptionCodeFull      = "Redemption_Full"
	RedemptionCodeNetAmount = "Redemption_NetAmount"
)

// RedemptionClassification has at most one flag set. All false means the
// redemption is unclassified.
type RedemptionClassification struct {
	ByAmount bool `json:"byAmount"`
	ByShares bool `json:"byShares"`
	Full     bool `json:"full"`
}

func ClassificationFromCode(code string) RedemptionClassification {
	switch code {
	case RedemptionCodeShares:
		return RedemptionClassification{ByShares: true}
	case RedemptionCodeFull:
		return RedemptionClassification{Full: true}
	case RedemptionCodeNetAmount:
		return RedemptionClassification{ByAmount: true}
	default:
		return RedemptionClassification{}
	}
}

func (r RedemptionClassification) Classified() bool {
	return r.ByAmount || r.ByShares || r.Full
}
