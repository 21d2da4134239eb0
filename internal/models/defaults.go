package models

import "time"

// DefaultDocument returns the seed data used when the remote store has never
// been written, and the last-resort read result when both the remote store
// and the local fallback are unavailable.
func DefaultDocument() *Document {
	now := time.Now().UTC()
	created := now.Format(time.RFC3339)
	return &Document{
		Products: []Product{
			{
				ID:            1,
				Name:          "كتاب الرياضيات المتقدمة",
				Price:         120,
				OriginalPrice: 150,
				Image:         "https://images.unsplash.com/photo-1544716278-ca5e3f4abd8c?w=400&h=400&fit=crop",
				Rating:        4.5,
				Category:      "كتب",
				Subcategory:   "كتب تعليمية",
				Badge:         "الأكثر مبيعاً",
				Description:   "كتاب شامل في الرياضيات المتقدمة يغطي جميع المواضيع الأساسية",
				InStock:       true,
				Reviews:       45,
				Stock:         25,
				Sales:         120,
			},
			{
				ID:          2,
				Name:        "لعبة الذكاء التعليمية",
				Price:       85,
				Image:       "https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=400&h=400&fit=crop",
				Rating:      4.8,
				Category:    "ألعاب",
				Subcategory: "ألعاب تعليمية",
				Description: "لعبة تعليمية تنمي مهارات التفكير والذكاء",
				InStock:     true,
				Reviews:     32,
				Stock:       15,
				Sales:       85,
			},
			{
				ID:            3,
				Name:          "مجموعة أقلام ملونة",
				Price:         45,
				OriginalPrice: 60,
				Image:         "https://images.unsplash.com/photo-1513475382585-d06e58bcb0e0?w=400&h=400&fit=crop",
				Rating:        4.3,
				Category:      "أدوات مكتبية",
				Subcategory:   "أقلام",
				Description:   "مجموعة أقلام ملونة عالية الجودة للرسم والكتابة",
				InStock:       true,
				Reviews:       28,
				Stock:         40,
				Sales:         95,
			},
		},
		Orders: []Order{},
		Users: []User{
			{
				ID:          1,
				Username:    "admin",
				Password:    "admin123",
				Name:        "المدير العام",
				Email:       "admin@maktabat-alamal.com",
				Role:        "admin",
				Permissions: []string{"all"},
				CreatedAt:   created,
			},
		},
		Categories: DefaultCategories(),
		ForumPosts: []ForumPost{},
		Coupons: []Coupon{
			{
				ID:         1,
				Code:       "WELCOME10",
				Discount:   10,
				Type:       CouponPercentage,
				MinAmount:  100,
				MaxUses:    100,
				UsedCount:  0,
				ExpiryDate: "2026-12-31",
				IsActive:   true,
				CreatedAt:  created,
			},
		},
		Notifications: []Notification{},
		Menus:         DefaultMenus(),
		LastUpdated:   now,
	}
}

// DefaultCategories is exposed separately because snapshot reads fall back to
// it even before any document has been fetched.
func DefaultCategories() []Category {
	return []Category{
		{ID: 1, Name: "كتب", Subcategories: []string{"كتب تعليمية", "كتب أدبية", "كتب علمية", "كتب دينية"}},
		{ID: 2, Name: "ألعاب", Subcategories: []string{"ألعاب تعليمية", "ألعاب إلكترونية", "ألعاب رياضية"}},
		{ID: 3, Name: "أدوات مكتبية", Subcategories: []string{"أقلام", "دفاتر", "مساطر", "أدوات هندسية"}},
	}
}

// DefaultMenus is also used by the menu repositories to seed an empty
// collection.
func DefaultMenus() []MenuItem {
	return []MenuItem{
		{ID: "1", Name: "الرئيسية", URL: "/", Order: 1, IsActive: true},
		{ID: "2", Name: "المنتجات", URL: "/products", Order: 2, IsActive: true},
		{ID: "3", Name: "الكتب", URL: "/products?category=كتب", ParentID: "2", Order: 1, IsActive: true},
		{ID: "4", Name: "الألعاب", URL: "/products?category=ألعاب", ParentID: "2", Order: 2, IsActive: true},
		{ID: "5", Name: "أدوات مكتبية", URL: "/products?category=أدوات مكتبية", ParentID: "2", Order: 3, IsActive: true},
		{ID: "6", Name: "اتصل بنا", URL: "/contact", Order: 3, IsActive: true},
		{ID: "7", Name: "المنتدى", URL: "/forum", Order: 4, IsActive: true},
	}
}
