// Package service holds the reaction state logic sitting between the HTTP
// handlers and the repositories.
package service

import (
	"context"
	"errors"

	"github.com/netflim/movie-reactions/internal/model"
	"github.com/netflim/movie-reactions/internal/repository"
)

// ReactionService persists the like/dislike state for (user, movie) pairs.
//
// The three-state cycle neutral -> liked -> disliked -> neutral is
// advanced by the caller: clients compute the boolean (or absence) that
// comes next and this service persists exactly what it is given.  The
// stored row is the single source of truth; current state is always
// rederived by reading it, never remembered across requests.
type ReactionService struct {
	movies *repository.MovieRepo
	likes  *repository.LikeRepo
}

// NewReactionService constructs a ReactionService.  Both repositories
// must be non-nil.
func NewReactionService(movies *repository.MovieRepo, likes *repository.LikeRepo) *ReactionService {
	if movies == nil || likes == nil {
		panic("nil repository passed to NewReactionService")
	}
	return &ReactionService{movies: movies, likes: likes}
}

// RecordReaction upserts the edge for the pair with the given boolean.
// When movie metadata accompanies the reaction the movie cache row is
// upserted first so the edge's foreign key is always satisfiable.  The
// returned edge reflects persisted state: fresh timestamps on first
// insert, original created_at preserved on replacement.
func (s *ReactionService) RecordReaction(ctx context.Context, userID string, movieID int64, isLiked bool, movie *model.Movie) (model.LikeEdge, error) {
	if movie != nil {
		movie.ID = movieID
		if err := s.movies.Upsert(ctx, *movie); err != nil {
			return model.LikeEdge{}, err
		}
	}
	return s.likes.Upsert(ctx, userID, movieID, isLiked)
}

// ClearReaction returns the pair to the neutral state by deleting its
// edge.  deleted=false when the pair was already neutral; repeating the
// call is never an error.
func (s *ReactionService) ClearReaction(ctx context.Context, userID string, movieID int64) (bool, error) {
	return s.likes.Delete(ctx, userID, movieID)
}

// GetReaction reads the current state for the pair.  The edge pointer is
// nil when the pair is neutral.
func (s *ReactionService) GetReaction(ctx context.Context, userID string, movieID int64) (model.Reaction, *model.LikeEdge, error) {
	edge, err := s.likes.Get(ctx, userID, movieID)
	if errors.Is(err, repository.ErrLikeNotFound) {
		return model.ReactionNeutral, nil, nil
	}
	if err != nil {
		return model.ReactionNeutral, nil, err
	}
	return model.ReactionFromStored(true, edge.IsLiked), &edge, nil
}
