package domain

import "context"

type Service interface {
	Get(ctx context.Context, id string) (*Customer, error)
}
