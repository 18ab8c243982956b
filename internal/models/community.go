package models

import "time"

type PostCategory string

const (
	PostCategoryGeneral      PostCategory = "general"
	PostCategoryPeriods      PostCategory = "periods"
	PostCategoryPCOS         PostCategory = "pcos"
	PostCategoryFertility    PostCategory = "fertility"
	PostCategoryPregnancy    PostCategory = "pregnancy"
	PostCategoryMenopause    PostCategory = "menopause"
	PostCategoryMentalHealth PostCategory = "mental_health"
	PostCategoryNutrition    PostCategory = "nutrition"
)

func AllPostCategories() []PostCategory {
	return []PostCategory{
		PostCategoryGeneral,
		PostCategoryPeriods,
		PostCategoryPCOS,
		PostCategoryFertility,
		PostCategoryPregnancy,
		PostCategoryMenopause,
		PostCategoryMentalHealth,
		PostCategoryNutrition,
	}
}

func (category PostCategory) Valid() bool {
	for _, candidate := range AllPostCategories() {
		if candidate == category {
			return true
		}
	}
	return false
}

type CommunityPost struct {
	ID        string       `json:"id"`
	UserID    string       `json:"userId"`
	UserName  string       `json:"userName"`
	Category  PostCategory `json:"category"`
	Title     string       `json:"title"`
	Content   string       `json:"content"`
	Phase     CyclePhase   `json:"phase,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
	Likes     int          `json:"likes"`
	Comments  int          `json:"comments"`
	// IsLiked is computed for the current viewer and is not meaningful in storage.
	IsLiked  bool     `json:"isLiked"`
	IsPinned bool     `json:"isPinned"`
	Tags     []string `json:"tags"`
}

type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Likes     int       `json:"likes"`
	IsLiked   bool      `json:"isLiked"`
}

type CycleSyncStatus string

const (
	CycleSyncSynced    CycleSyncStatus = "synced"
	CycleSyncClose     CycleSyncStatus = "close"
	CycleSyncDifferent CycleSyncStatus = "different"
)

type CycleBuddy struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	UserName        string          `json:"userName"`
	Avatar          string          `json:"avatar,omitempty"`
	CycleSyncStatus CycleSyncStatus `json:"cycleSyncStatus"`
	LastActive      time.Time       `json:"lastActive"`
	IsConnected     bool            `json:"isConnected"`
}
