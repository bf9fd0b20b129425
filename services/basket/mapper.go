package basket

// BasketView is what clients get to see; the Basket itself is never serialized.
type BasketView struct {
	ID         int64            `json:"id"`
	BuyerID    string           `json:"buyerId"`
	Items      []BasketItemView `json:"items"`
	TotalPrice int64            `json:"totalPrice"`
}

type BasketItemView struct {
	ProductID  int    `json:"productId"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	PictureURL string `json:"pictureUrl"`
	Type       string `json:"type"`
	Brand      string `json:"brand"`
	Quantity   int    `json:"quantity"`
	TotalPrice int64  `json:"totalPrice"`
}

func toBasketView(b *Basket) BasketView {
	view := BasketView{
		ID:      b.ID,
		BuyerID: b.OwnerToken,
		Items:   make([]BasketItemView, 0, len(b.Lines)),
	}
	for _, l := range b.Lines {
		item := BasketItemView{
			ProductID:  l.Product.ID,
			Name:       l.Product.Name,
			Price:      l.Product.Price,
			PictureURL: l.Product.PictureURL,
			Type:       l.Product.Type,
			Brand:      l.Product.Brand,
			Quantity:   l.Quantity,
			TotalPrice: l.Product.Price * int64(l.Quantity),
		}
		view.Items = append(view.Items, item)
		view.TotalPrice += item.TotalPrice
	}
	return view
}
