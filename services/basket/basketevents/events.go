package basketevents

const (
	TopicName       = "basket"
	createdName     = TopicName + ".created"
	itemAddedName   = TopicName + ".item.added"
	itemRemovedName = TopicName + ".item.removed"
)

type BasketCreated struct {
	BasketUID string
}

func (e BasketCreated) GetEventTypeName() string {
	return createdName
}

func (e BasketCreated) GetAggregateName() string {
	return e.BasketUID
}

type ItemAdded struct {
	BasketUID string
	ProductID int
	Quantity  int
}

func (e ItemAdded) GetEventTypeName() string {
	return itemAddedName
}

func (e ItemAdded) GetAggregateName() string {
	return e.BasketUID
}

type ItemRemoved struct {
	BasketUID string
	ProductID int
	Quantity  int
}

func (e ItemRemoved) GetEventTypeName() string {
	return itemRemovedName
}

func (e ItemRemoved) GetAggregateName() string {
	return e.BasketUID
}
