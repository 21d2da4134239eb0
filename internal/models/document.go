package models

import "time"

// Document is the single aggregate record the storefront persists. The whole
// thing is read and replaced wholesale; collections are never updated
// individually on the wire.
type Document struct {
	Products      []Product      `json:"products"`
	Orders        []Order        `json:"orders"`
	Users         []User         `json:"users"`
	Categories    []Category     `json:"categories"`
	ForumPosts    []ForumPost    `json:"forumPosts"`
	Coupons       []Coupon       `json:"coupons"`
	Notifications []Notification `json:"notifications"`
	Menus         []MenuItem     `json:"menus"`
	LastUpdated   time.Time      `json:"lastUpdated"`
}

// Clone returns a deep copy. Callers receive clones from the cache so a
// mutation in one goroutine can never leak into another reader's view.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{
		Products:      append([]Product(nil), d.Products...),
		Orders:        cloneOrders(d.Orders),
		Users:         cloneUsers(d.Users),
		Categories:    cloneCategories(d.Categories),
		ForumPosts:    cloneForumPosts(d.ForumPosts),
		Coupons:       append([]Coupon(nil), d.Coupons...),
		Notifications: append([]Notification(nil), d.Notifications...),
		Menus:         append([]MenuItem(nil), d.Menus...),
		LastUpdated:   d.LastUpdated,
	}
	for i := range out.Products {
		out.Products[i].Images = append([]string(nil), d.Products[i].Images...)
	}
	return out
}

func cloneOrders(in []Order) []Order {
	out := append([]Order(nil), in...)
	for i := range out {
		out[i].Items = append([]CartItem(nil), in[i].Items...)
	}
	return out
}

func cloneUsers(in []User) []User {
	out := append([]User(nil), in...)
	for i := range out {
		out[i].Permissions = append([]string(nil), in[i].Permissions...)
	}
	return out
}

func cloneCategories(in []Category) []Category {
	out := append([]Category(nil), in...)
	for i := range out {
		out[i].Subcategories = append([]string(nil), in[i].Subcategories...)
	}
	return out
}

func cloneForumPosts(in []ForumPost) []ForumPost {
	out := append([]ForumPost(nil), in...)
	for i := range out {
		out[i].Replies = append([]ForumReply(nil), in[i].Replies...)
	}
	return out
}
