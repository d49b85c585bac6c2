package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/storefront/pkg/pagination"
	"github.com/smallbiznis/storefront/pkg/timestamp"
)

type Service interface {
	Get(ctx context.Context, id int64) (*Response, error)
	List(ctx context.Context, req ListRequest) (*ListResponse, error)
}

type ListRequest struct {
	Page pagination.Page
	Role string
}

type ListResponse struct {
	Data       []Response          `json:"data"`
	Pagination pagination.PageMeta `json:"pagination"`
}

// Response is the public user projection. Nullable leaves (avatar, sms)
// serialize as explicit nulls so clients can tell "known absent" from
// "missing field".
type Response struct {
	ID           int64        `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	Role         string       `json:"role"`
	Profile      Profile      `json:"profile"`
	Preferences  Preferences  `json:"preferences"`
	Subscription Subscription `json:"subscription"`
	Metadata     Metadata     `json:"metadata"`
}

type Profile struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Avatar    *string `json:"avatar"`
}

type Notifications struct {
	Email bool  `json:"email"`
	Push  bool  `json:"push"`
	SMS   *bool `json:"sms"`
}

type Preferences struct {
	Notifications Notifications `json:"notifications"`
	Theme         string        `json:"theme"`
	Language      string        `json:"language"`
}

type Subscription struct {
	Plan      string        `json:"plan"`
	Status    string        `json:"status"`
	ExpiresAt timestamp.UTC `json:"expiresAt"`
	Features  []string      `json:"features"`
}

type Metadata struct {
	CreatedAt   timestamp.UTC `json:"createdAt"`
	LastLoginAt timestamp.UTC `json:"lastLoginAt"`
	LoginCount  int64         `json:"loginCount"`
	IsVerified  bool          `json:"isVerified"`
}

var ErrNotFound = errors.New("not_found")
