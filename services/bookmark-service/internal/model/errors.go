package model

import "errors"

var (
	ErrEmptyName           = errors.New("name must not be blank")
	ErrEmptyURL            = errors.New("url must not be blank")
	ErrEmptyEmail          = errors.New("email must not be blank")
	ErrEmptyPasswordHash   = errors.New("password hash must not be blank")
	ErrNilBookmark         = errors.New("bookmark must not be nil")
	ErrBookmarkNotInFolder = errors.New("bookmark does not belong to this folder")
)
