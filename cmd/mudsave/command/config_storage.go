package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/mudsave/internal/game"
	"github.com/pixil98/mudsave/internal/storage"
)

type StorageConfig struct {
	Zones   AssetConfig[*game.Zone]   `json:"zones"`
	Rooms   AssetConfig[*game.Room]   `json:"rooms"`
	Mobiles AssetConfig[*game.Mobile] `json:"mobiles"`
	Objects AssetConfig[*game.Object] `json:"objects"`
}

func (c *StorageConfig) BuildDictionary() (*game.Dictionary, error) {
	zones, err := c.Zones.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating zone store: %w", err)
	}
	rooms, err := c.Rooms.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating room store: %w", err)
	}
	mobiles, err := c.Mobiles.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating mobile store: %w", err)
	}
	objects, err := c.Objects.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating object store: %w", err)
	}

	dict := &game.Dictionary{
		Zones:   zones,
		Rooms:   rooms,
		Mobiles: mobiles,
		Objects: objects,
	}

	if err := dict.Resolve(); err != nil {
		return nil, fmt.Errorf("resolving references: %w", err)
	}

	return dict, nil
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()
	el.Add(c.Zones.validate("zones"))
	el.Add(c.Rooms.validate("rooms"))
	el.Add(c.Mobiles.validate("mobiles"))
	el.Add(c.Objects.validate("objects"))
	return el.Err()
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}
