package notify

// Collection names match the persisted entity collections; observers key
// their subscriptions on them.
type Collection string

const (
	CollectionTemplates  Collection = "templates"
	CollectionDocuments  Collection = "documents"
	CollectionSignatures Collection = "documentSignatures"
	CollectionContracts  Collection = "contracts"
)

type ChangeAction string

const (
	ChangeCreated ChangeAction = "created"
	ChangeUpdated ChangeAction = "updated"
	ChangeDeleted ChangeAction = "deleted"
)

// ChangeEvent is broadcast after every successful collection write so other
// observers of the same collection can refresh.
type ChangeEvent struct {
	Collection Collection   `json:"collection"`
	Action     ChangeAction `json:"action"`
	ID         string       `json:"id"`
}

type ChangeBus = Bus[Collection, ChangeEvent]

func NewChangeBus() *ChangeBus {
	return NewBus[Collection, ChangeEvent]()
}
