package fusion

import (
	"encoding/json"
	"fmt"
	"time"
)

// Kind is the discrete trading action a fused signal resolves to. The
// ordering is meaningful: kinds ascend from strongest sell to strongest buy.
type Kind int

const (
	StrongSell Kind = iota
	Sell
	Hold
	Buy
	StrongBuy
)

func (k Kind) String() string {
	switch k {
	case StrongSell:
		return "STRONG_SELL"
	case Sell:
		return "SELL"
	case Hold:
		return "HOLD"
	case Buy:
		return "BUY"
	case StrongBuy:
		return "STRONG_BUY"
	default:
		return "UNKNOWN"
	}
}

// IsBuy reports whether the kind is a buy-family action.
func (k Kind) IsBuy() bool {
	return k == Buy || k == StrongBuy
}

// IsSell reports whether the kind is a sell-family action.
func (k Kind) IsSell() bool {
	return k == Sell || k == StrongSell
}

// MarshalJSON serializes the kind as its string form.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON parses the string form back into a kind.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "STRONG_SELL":
		*k = StrongSell
	case "SELL":
		*k = Sell
	case "HOLD":
		*k = Hold
	case "BUY":
		*k = Buy
	case "STRONG_BUY":
		*k = StrongBuy
	default:
		return fmt.Errorf("unknown signal kind %q", s)
	}
	return nil
}

// Signal is the fused trading decision for one evaluation tick. It is
// created once per tick, owned by the caller, and never mutated.
type Signal struct {
	Kind           Kind      `json:"signal_kind"`
	Confidence     float64   `json:"confidence"`
	SentimentScore float64   `json:"sentiment_score"`
	TechnicalScore float64   `json:"technical_score"`
	CombinedScore  float64   `json:"combined_score"`
	Reasoning      []string  `json:"reasoning"`
	Timestamp      time.Time `json:"timestamp"`
	ReferencePrice float64   `json:"reference_price"`
}
