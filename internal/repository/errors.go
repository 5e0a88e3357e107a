package repository

import "errors"

var (
	ErrUserExists          = errors.New("user already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrPropertyNotFound    = errors.New("property not found")
	ErrLocationNotFound    = errors.New("location not found")
	ErrCatalogNotFound     = errors.New("catalog entry not found")
	ErrCatalogExists       = errors.New("catalog entry already exists")
	ErrCatalogInUse        = errors.New("catalog entry is referenced")
	ErrContactNotFound     = errors.New("contact not found")
	ErrImageNotFound       = errors.New("image not found")
	ErrDetailsNotFound     = errors.New("details not found")
	ErrFavoriteNotFound    = errors.New("favorite not found")
	ErrAudioJobNotFound    = errors.New("audio job not found")
	ErrNoFieldsToUpdate    = errors.New("no fields to update")
)
