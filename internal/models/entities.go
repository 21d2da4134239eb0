package models

// Entity types mirror the JSON documents the storefront has always stored.
// Field names (tags) are part of the wire format and must not change.

type Product struct {
	ID            int      `json:"id" bson:"id"`
	Name          string   `json:"name" bson:"name"`
	Price         float64  `json:"price" bson:"price"`
	OriginalPrice float64  `json:"originalPrice,omitempty" bson:"originalPrice,omitempty"`
	Image         string   `json:"image" bson:"image"`
	Images        []string `json:"images,omitempty" bson:"images,omitempty"`
	Rating        float64  `json:"rating" bson:"rating"`
	Category      string   `json:"category" bson:"category"`
	Subcategory   string   `json:"subcategory,omitempty" bson:"subcategory,omitempty"`
	Badge         string   `json:"badge,omitempty" bson:"badge,omitempty"`
	Description   string   `json:"description" bson:"description"`
	InStock       bool     `json:"inStock" bson:"inStock"`
	Reviews       int      `json:"reviews" bson:"reviews"`
	Stock         int      `json:"stock" bson:"stock"`
	Sales         int      `json:"sales" bson:"sales"`
}

type CartItem struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity"`
}

// Order status values used by the admin back office.
const (
	OrderStatusNew       = "جديد"
	OrderStatusPreparing = "قيد التجهيز"
	OrderStatusShipped   = "مشحون"
	OrderStatusCompleted = "مكتمل"
)

type Order struct {
	ID            string     `json:"id" bson:"id"`
	Customer      string     `json:"customer" bson:"customer"`
	Phone         string     `json:"phone" bson:"phone"`
	Address       string     `json:"address" bson:"address"`
	Items         []CartItem `json:"items" bson:"items"`
	Subtotal      float64    `json:"subtotal,omitempty" bson:"subtotal,omitempty"`
	Shipping      float64    `json:"shipping,omitempty" bson:"shipping,omitempty"`
	Discount      float64    `json:"discount,omitempty" bson:"discount,omitempty"`
	Total         float64    `json:"total" bson:"total"`
	PaymentMethod string     `json:"paymentMethod" bson:"paymentMethod"`
	Status        string     `json:"status" bson:"status"`
	Date          string     `json:"date" bson:"date"`
	Notes         string     `json:"notes,omitempty" bson:"notes,omitempty"`
	Coupon        string     `json:"coupon,omitempty" bson:"coupon,omitempty"`
}

type User struct {
	ID          int      `json:"id" bson:"id"`
	Username    string   `json:"username" bson:"username"`
	Password    string   `json:"password" bson:"password"`
	Name        string   `json:"name" bson:"name"`
	Email       string   `json:"email" bson:"email"`
	Role        string   `json:"role" bson:"role"`
	Permissions []string `json:"permissions" bson:"permissions"`
	CreatedAt   string   `json:"createdAt" bson:"createdAt"`
}

type Category struct {
	ID            int      `json:"id" bson:"id"`
	Name          string   `json:"name" bson:"name"`
	Subcategories []string `json:"subcategories" bson:"subcategories"`
}

// Coupon discount types.
const (
	CouponPercentage = "percentage"
	CouponFixed      = "fixed"
)

type Coupon struct {
	ID         int     `json:"id" bson:"id"`
	Code       string  `json:"code" bson:"code"`
	Discount   float64 `json:"discount" bson:"discount"`
	Type       string  `json:"type" bson:"type"`
	MinAmount  float64 `json:"minAmount,omitempty" bson:"minAmount,omitempty"`
	MaxUses    int     `json:"maxUses,omitempty" bson:"maxUses,omitempty"`
	UsedCount  int     `json:"usedCount" bson:"usedCount"`
	ExpiryDate string  `json:"expiryDate" bson:"expiryDate"`
	IsActive   bool    `json:"isActive" bson:"isActive"`
	CreatedAt  string  `json:"createdAt" bson:"createdAt"`
}

type Notification struct {
	ID        string `json:"id" bson:"id"`
	Title     string `json:"title" bson:"title"`
	Message   string `json:"message" bson:"message"`
	Type      string `json:"type" bson:"type"`
	IsRead    bool   `json:"isRead" bson:"isRead"`
	CreatedAt string `json:"createdAt" bson:"createdAt"`
}

type ForumReply struct {
	ID        string `json:"id" bson:"id"`
	Content   string `json:"content" bson:"content"`
	Author    string `json:"author" bson:"author"`
	CreatedAt string `json:"createdAt" bson:"createdAt"`
}

type ForumPost struct {
	ID        string       `json:"id" bson:"id"`
	Title     string       `json:"title" bson:"title"`
	Content   string       `json:"content" bson:"content"`
	Author    string       `json:"author" bson:"author"`
	Category  string       `json:"category" bson:"category"`
	CreatedAt string       `json:"createdAt" bson:"createdAt"`
	Replies   []ForumReply `json:"replies" bson:"replies"`
	Views     int          `json:"views" bson:"views"`
}

// MenuItem is a node in the site navigation tree. Children reference their
// parent through ParentID; ordering among siblings uses Order.
type MenuItem struct {
	ID       string `json:"id" bson:"id"`
	Name     string `json:"name" bson:"name"`
	URL      string `json:"url" bson:"url"`
	ParentID string `json:"parentId,omitempty" bson:"parentId,omitempty"`
	Order    int    `json:"order" bson:"order"`
	IsActive bool   `json:"isActive" bson:"isActive"`
}
