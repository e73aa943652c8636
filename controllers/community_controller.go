package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"jiefei/models"
	"jiefei/utils"
)

// Feed zones. SELF_DISCIPLINE lists persist notes; DEER_KING lists every
// takeoff note regardless of its method tag.
const zoneDeerKing = "DEER_KING"

// CommunityController serves the post feed and the like toggle.
type CommunityController struct {
	db *gorm.DB
}

// NewCommunityController creates a new controller instance.
func NewCommunityController(db *gorm.DB) *CommunityController {
	return &CommunityController{db: db}
}

// ListPosts returns the newest 50 posts of a zone with author info and a
// liked flag for the caller.
func (cc *CommunityController) ListPosts(ctx *gin.Context) {
	zone := strings.TrimSpace(ctx.Query("type"))
	if zone == "" {
		zone = models.PostTypeSelfDiscipline
	}

	userID, authenticated := getUserID(ctx)

	// Anonymous zone listings are cacheable; the liked flag makes
	// authenticated responses caller-specific.
	cacheKey := fmt.Sprintf("cache:community:posts:zone=%s", zone)
	if !authenticated {
		if b, ok := utils.CacheGetBytes(cacheKey); ok {
			ctx.Data(http.StatusOK, "application/json", b)
			return
		}
	}

	query := cc.db.Preload("User").Order("created_at DESC").Limit(50)
	switch zone {
	case models.PostTypeSelfDiscipline:
		query = query.Where("type = ?", models.PostTypeSelfDiscipline)
	case zoneDeerKing:
		query = query.Where("type <> ?", models.PostTypeSelfDiscipline)
	default:
		query = query.Where("type = ?", zone)
	}

	var posts []models.Post
	if err := query.Find(&posts).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to load posts")
		return
	}

	liked := map[uint]bool{}
	if authenticated && len(posts) > 0 {
		ids := make([]uint, 0, len(posts))
		for _, post := range posts {
			ids = append(ids, post.ID)
		}
		var likes []models.PostLike
		if err := cc.db.Where("user_id = ? AND post_id IN ?", userID, ids).Find(&likes).Error; err == nil {
			for _, like := range likes {
				liked[like.PostID] = true
			}
		}
	}

	items := make([]gin.H, 0, len(posts))
	for _, post := range posts {
		items = append(items, gin.H{
			"id":         post.ID,
			"content":    post.Content,
			"type":       post.Type,
			"likes":      post.Likes,
			"created_at": post.CreatedAt,
			"liked":      liked[post.ID],
			"author": gin.H{
				"id":             post.User.ID,
				"username":       post.User.Username,
				"avatar_url":     post.User.AvatarURL,
				"merit":          post.User.Merit,
				"total_takeoffs": post.User.TotalTakeoffs,
			},
		})
	}

	if !authenticated {
		wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: gin.H{"items": items}}
		utils.CacheSetJSON(cacheKey, wrapper, time.Minute)
	}
	utils.Success(ctx, gin.H{"items": items})
}

// CreatePost publishes a standalone post into a zone.
func (cc *CommunityController) CreatePost(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
		Type    string `json:"type"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	content := utils.Sanitize(strings.TrimSpace(req.Content))
	if content == "" {
		utils.Error(ctx, http.StatusBadRequest, 40021, "content cannot be empty")
		return
	}
	postType := utils.Sanitize(strings.TrimSpace(req.Type))
	if postType == "" {
		postType = models.PostTypeSelfDiscipline
	}

	post := models.Post{
		UserID:  userID,
		Content: content,
		Type:    postType,
	}
	if err := cc.db.Create(&post).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to create post")
		return
	}

	utils.InvalidateByPrefix("cache:community:posts:")
	utils.Success(ctx, gin.H{"post": post, "liked": false})
}

// ToggleLike flips the caller's like on a post. Both the relation row and the
// counter move in one transaction.
func (cc *CommunityController) ToggleLike(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		PostID uint `json:"post_id" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40022, "post id required")
		return
	}

	var nowLiked bool
	err := cc.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, req.PostID).Error; err != nil {
			return err
		}

		var like models.PostLike
		err := tx.Where("user_id = ? AND post_id = ?", userID, req.PostID).First(&like).Error
		switch {
		case err == nil:
			if err := tx.Delete(&like).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Post{}).Where("id = ?", req.PostID).
				Update("likes", gorm.Expr("likes - 1")).Error; err != nil {
				return err
			}
			nowLiked = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&models.PostLike{UserID: userID, PostID: req.PostID}).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Post{}).Where("id = ?", req.PostID).
				Update("likes", gorm.Expr("likes + 1")).Error; err != nil {
				return err
			}
			nowLiked = true
		default:
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40420, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to toggle like")
		return
	}

	var likes int
	if err := cc.db.Model(&models.Post{}).Where("id = ?", req.PostID).
		Select("likes").Scan(&likes).Error; err != nil {
		likes = 0
	}

	utils.InvalidateByPrefix("cache:community:posts:")
	utils.Success(ctx, gin.H{"liked": nowLiked, "likes": likes})
}
