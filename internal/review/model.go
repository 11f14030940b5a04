package review

import "time"

type Review struct {
	ID         int       `db:"id" json:"id"`
	ShopID     int       `db:"shop_id" json:"shop_id"`
	CustomerID int       `db:"customer_id" json:"customer_id"`
	Rating     int       `db:"rating" json:"rating"`
	Comment    string    `db:"comment" json:"comment"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type ReviewWithCustomer struct {
	Review
	CustomerName string `db:"customer_name" json:"customer_name"`
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}
