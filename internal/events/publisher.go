package events

// TopicTransactionRecorded carries one event per transaction appended to
// the ledger.
const TopicTransactionRecorded = "transaction_recorded"

type Publisher interface {
	Publish(topic string, event any) error
}

// Noop drops events. Used when no brokers are configured.
type Noop struct{}

func (Noop) Publish(string, any) error { return nil }
