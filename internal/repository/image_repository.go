package repository

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"

	"prevently/internal/docstore"
	"prevently/internal/model"
)

var ErrMissingChunk = errors.New("image chunk missing")

// ChunkSize keeps each base64 chunk well under Firestore's 1 MiB document limit.
const ChunkSize = 300_000

type ImageRepository struct {
	store docstore.Store
}

func NewImageRepository(store docstore.Store) *ImageRepository {
	return &ImageRepository{store: store}
}

func SplitChunks(data []byte, size int) [][]byte {
	var chunks [][]byte
	for i := 0; i < len(data); i += size {
		end := i + size
		if end > len(data) {
			end = len(data)
		}
		chunks = append(chunks, data[i:end])
	}
	return chunks
}

func (r *ImageRepository) SaveImage(ctx context.Context, img model.Image) (int, error) {
	chunks := SplitChunks(img.Data, ChunkSize)

	err := r.store.Set(ctx, model.ImagesCollection, img.ID, map[string]any{
		"name":        img.Name,
		"contentType": img.ContentType,
		"totalChunks": len(chunks),
	}, false)
	if err != nil {
		return 0, err
	}

	chunkCollection := docstore.SubCollection(model.ImagesCollection, img.ID, model.ChunksCollection)
	for i, chunk := range chunks {
		err := r.store.Set(ctx, chunkCollection, strconv.Itoa(i), map[string]any{
			"data": base64.StdEncoding.EncodeToString(chunk),
		}, false)
		if err != nil {
			return 0, fmt.Errorf("save chunk %d: %w", i, err)
		}
	}

	return len(chunks), nil
}

// GetImage reassembles chunks 0..totalChunks-1 in index order. It returns
// docstore.ErrNotFound when the image header is missing and ErrMissingChunk
// when one of those chunks is absent.
func (r *ImageRepository) GetImage(ctx context.Context, id string) (*model.Image, error) {
	doc, err := r.store.Get(ctx, model.ImagesCollection, id)
	if err != nil {
		return nil, err
	}

	chunkCollection := docstore.SubCollection(model.ImagesCollection, id, model.ChunksCollection)
	chunkDocs, err := r.store.Query(ctx, docstore.NewQuery(chunkCollection))
	if err != nil {
		return nil, err
	}

	total := model.IntField(doc.Data, "totalChunks")
	if total < 0 {
		return nil, fmt.Errorf("image %s: invalid totalChunks %d", id, total)
	}
	parts := make([][]byte, total)
	for _, d := range chunkDocs {
		idx, err := strconv.Atoi(d.ID)
		if err != nil {
			return nil, fmt.Errorf("chunk id %q: %w", d.ID, err)
		}
		// chunks past totalChunks are left over from a larger earlier upload
		if idx < 0 || idx >= total {
			continue
		}
		raw, err := base64.StdEncoding.DecodeString(model.StringField(d.Data, "data"))
		if err != nil {
			return nil, fmt.Errorf("decode chunk %d: %w", idx, err)
		}
		parts[idx] = raw
	}

	var buf bytes.Buffer
	for i, p := range parts {
		if p == nil {
			return nil, fmt.Errorf("image %s: %w: chunk %d of %d", id, ErrMissingChunk, i, total)
		}
		buf.Write(p)
	}

	return &model.Image{
		ID:          id,
		Name:        model.StringField(doc.Data, "name"),
		ContentType: model.StringField(doc.Data, "contentType"),
		TotalChunks: total,
		Data:        buf.Bytes(),
	}, nil
}
