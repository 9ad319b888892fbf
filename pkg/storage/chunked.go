package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
)

// DefaultChunkSize is roughly 4MB of text
const DefaultChunkSize = 4194304

const chunkDataTypeVersion = 0

var ErrChunkVersion = errors.New("unsupported chunk metadata version")

type ChunkMetadata struct {
	DataTypeVersion int `json:"dataTypeVersion"`
	ChunkCount      int `json:"chunkCount"`
	ChunkSize       int `json:"chunkSize"`
}

// ChunkedStore splits payloads into pieces small enough for the backend.
//
// A payload stored under key K is written as K.0 ... K.n-1 followed by the
// metadata record K.metadata. Writes are not transactional, a crash half way
// through leaves the previous metadata pointing at a mix of old and new chunks.
type ChunkedStore struct {
	Backend   Backend
	ChunkSize int
}

func NewChunkedStore(backend Backend, chunkSize int) *ChunkedStore {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	return &ChunkedStore{
		Backend:   backend,
		ChunkSize: chunkSize,
	}
}

func MetadataKey(key string) string {
	return key + ".metadata"
}

func ChunkKey(key string, index int) string {
	return fmt.Sprintf("%s.%d", key, index)
}

// Split cuts payload into consecutive pieces of at most size characters
func Split(payload string, size int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}

	chunks := []string{}

	for len(payload) > 0 {
		end := len(payload)
		count := 0
		for i := range payload {
			if count == size {
				end = i
				break
			}
			count++
		}

		chunks = append(chunks, payload[:end])
		payload = payload[end:]
	}

	return chunks
}

func (c *ChunkedStore) Write(ctx context.Context, key string, payload string) error {
	chunks := Split(payload, c.ChunkSize)

	for i, chunk := range chunks {
		if err := c.Backend.Put(ctx, ChunkKey(key, i), chunk); err != nil {
			return fmt.Errorf("write chunk %d of %s: %w", i, key, err)
		}
	}

	metadata, err := json.Marshal(ChunkMetadata{
		DataTypeVersion: chunkDataTypeVersion,
		ChunkCount:      len(chunks),
		ChunkSize:       c.ChunkSize,
	})
	if err != nil {
		return err
	}

	if err := c.Backend.Put(ctx, MetadataKey(key), string(metadata)); err != nil {
		return fmt.Errorf("write metadata of %s: %w", key, err)
	}

	log.Debug().
		Str("key", key).
		Int("chunks", len(chunks)).
		Int("characters", utf8.RuneCountInString(payload)).
		Msg("Saved chunked data")

	return nil
}

func (c *ChunkedStore) Metadata(ctx context.Context, key string) (*ChunkMetadata, error) {
	rawMetadata, err := c.Backend.Get(ctx, MetadataKey(key))
	if err != nil {
		return nil, err
	}

	var metadata ChunkMetadata
	if err := json.Unmarshal([]byte(rawMetadata), &metadata); err != nil {
		return nil, fmt.Errorf("decode metadata of %s: %w", key, err)
	}

	if metadata.DataTypeVersion != chunkDataTypeVersion {
		return nil, fmt.Errorf("%s: %w %d", key, ErrChunkVersion, metadata.DataTypeVersion)
	}

	return &metadata, nil
}

func (c *ChunkedStore) Read(ctx context.Context, key string) (string, error) {
	metadata, err := c.Metadata(ctx, key)
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	for i := 0; i < metadata.ChunkCount; i++ {
		chunk, err := c.Backend.Get(ctx, ChunkKey(key, i))
		if err != nil {
			return "", err
		}

		builder.WriteString(chunk)
	}

	return builder.String(), nil
}

// Delete drops the metadata first so a half finished delete never looks like
// a readable payload.
func (c *ChunkedStore) Delete(ctx context.Context, key string) error {
	metadata, err := c.Metadata(ctx, key)
	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		return nil
	} else if err != nil {
		return err
	}

	if err := c.Backend.Delete(ctx, MetadataKey(key)); err != nil {
		return err
	}

	for i := 0; i < metadata.ChunkCount; i++ {
		if err := c.Backend.Delete(ctx, ChunkKey(key, i)); err != nil {
			return err
		}
	}

	return nil
}

// WriteJSON marshals value and writes it chunked under key
func (c *ChunkedStore) WriteJSON(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.Write(ctx, key, string(payload))
}

func (c *ChunkedStore) ReadJSON(ctx context.Context, key string, value any) error {
	payload, err := c.Read(ctx, key)
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(payload), value)
}
