package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"go.uber.org/zap"
)

// 関連記事の最大数
const maxRelatedPosts = 3

type BlogUsecase struct {
	posts  repo.BlogRepository
	logger *zap.Logger
}

// DI
func NewBlogUsecase(posts repo.BlogRepository, logger *zap.Logger) *BlogUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BlogUsecase{posts: posts, logger: logger}
}

type BlogListOutput struct {
	Items []model.BlogPost `json:"items"`
	Shown int              `json:"shown"`
	Total int              `json:"total"`
}

type BlogPostOutput struct {
	Post    model.BlogPost   `json:"post"`
	Related []model.BlogPost `json:"related"`
}

func (u *BlogUsecase) ListPosts(ctx context.Context, q, category string) (BlogListOutput, error) {
	all, err := u.posts.ListPosts(ctx)
	if err != nil {
		u.logger.Error("blog load failed", zap.Error(err))
		return BlogListOutput{}, NewHTTPError(http.StatusBadGateway, "Unable to load posts")
	}

	items := FilterPosts(all, q, category)
	return BlogListOutput{Items: items, Shown: len(items), Total: len(all)}, nil
}

// GetPost は記事と、同じカテゴリの関連記事（自分以外・最大3件）を返す。
func (u *BlogUsecase) GetPost(ctx context.Context, id string) (BlogPostOutput, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return BlogPostOutput{}, NewHTTPError(http.StatusBadRequest, "invalid post id")
	}

	post, err := u.posts.FindPost(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return BlogPostOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		u.logger.Error("blog post load failed", zap.String("post_id", id), zap.Error(err))
		return BlogPostOutput{}, NewHTTPError(http.StatusBadGateway, "Unable to load posts")
	}

	// 関連記事が取れなくても本文は返す
	all, err := u.posts.ListPosts(ctx)
	if err != nil {
		u.logger.Warn("related posts load failed", zap.Error(err))
		all = nil
	}

	return BlogPostOutput{Post: post, Related: relatedPosts(post, all)}, nil
}

func relatedPosts(post model.BlogPost, all []model.BlogPost) []model.BlogPost {
	out := make([]model.BlogPost, 0, maxRelatedPosts)
	for _, p := range all {
		if len(out) == maxRelatedPosts {
			break
		}
		if p.ID == post.ID || p.Category != post.Category {
			continue
		}
		// 一覧では本文は不要
		p.Content = ""
		out = append(out, p)
	}
	return out
}
