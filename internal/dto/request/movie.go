package request

type CreateMovieRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description *string `json:"description,omitempty"`
	PosterURL   *string `json:"poster_url,omitempty" validate:"omitempty,url"`
	Genre       string  `json:"genre" validate:"required,min=1,max=50"`
}

type UpdateMovieRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty"`
	PosterURL   *string `json:"poster_url,omitempty" validate:"omitempty,url"`
	Genre       *string `json:"genre,omitempty" validate:"omitempty,min=1,max=50"`
}

type MovieFilterRequest struct {
	Genre string `json:"genre"`
}
