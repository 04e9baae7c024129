package catalogservice

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// StaticClient каталог из фиксированного набора бизнесов (локальный запуск и тесты)
type StaticClient struct {
	mu         sync.RWMutex
	businesses map[int64]Business
}

// NewStaticClient создает каталог из переданных бизнесов
func NewStaticClient(businesses ...Business) *StaticClient {
	c := &StaticClient{businesses: make(map[int64]Business, len(businesses))}
	for _, b := range businesses {
		c.businesses[b.ID] = b
	}
	return c
}

// LoadStaticClient читает JSON-массив бизнесов из файла
func LoadStaticClient(path string) (*StaticClient, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read fixtures %s: %v", ErrInternal, path, err)
	}

	var businesses []Business
	if err := json.Unmarshal(data, &businesses); err != nil {
		return nil, fmt.Errorf("%w: decode fixtures %s: %v", ErrInvalidResponse, path, err)
	}

	return NewStaticClient(businesses...), nil
}

// GetBusiness возвращает бизнес по ID
func (c *StaticClient) GetBusiness(ctx context.Context, businessID int64) (*Business, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	b, ok := c.businesses[businessID]
	if !ok {
		return nil, ErrBusinessNotFound
	}
	return &b, nil
}
