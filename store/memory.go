package store

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore keeps documents in process memory. It backs the session-scoped
// cart storage (volatile by design, clearing the process empties every cart)
// and the service tests. Documents round-trip through bson so memory and
// mongo decode the same way.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string]map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string][]byte)}
}

func (s *MemoryStore) Get(ctx context.Context, collection, id string, out interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	if err := bson.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("get %s/%s: %w: %w", collection, id, ErrUnavailable, err)
	}
	return nil
}

func (s *MemoryStore) Put(ctx context.Context, collection, id string, doc interface{}) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return fmt.Errorf("put %s/%s: %w: %w", collection, id, ErrUnavailable, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string][]byte)
	}
	s.collections[collection][id] = raw
	return nil
}

func (s *MemoryStore) PutVersioned(ctx context.Context, collection, id string, doc interface{}, expected int64) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return fmt.Errorf("put versioned %s/%s: %w: %w", collection, id, ErrUnavailable, err)
	}
	var replacement bson.M
	if err := bson.Unmarshal(raw, &replacement); err != nil {
		return fmt.Errorf("put versioned %s/%s: %w: %w", collection, id, ErrUnavailable, err)
	}
	replacement["version"] = expected + 1

	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.collections[collection][id]
	if !ok {
		if expected != 0 {
			return ErrNotFound
		}
	} else {
		var current bson.M
		if err := bson.Unmarshal(stored, &current); err != nil {
			return fmt.Errorf("put versioned %s/%s: %w: %w", collection, id, ErrUnavailable, err)
		}
		if storedVersion(current) != expected {
			return ErrConflict
		}
	}
	encoded, err := bson.Marshal(replacement)
	if err != nil {
		return fmt.Errorf("put versioned %s/%s: %w: %w", collection, id, ErrUnavailable, err)
	}
	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string][]byte)
	}
	s.collections[collection][id] = encoded
	return nil
}

func storedVersion(doc bson.M) int64 {
	switch v := doc["version"].(type) {
	case int32:
		return int64(v)
	case int64:
		return v
	default:
		return 0
	}
}

func (s *MemoryStore) Patch(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("patch %s/%s: %w: %w", collection, id, ErrUnavailable, err)
	}
	for k, v := range fields {
		doc[k] = v
	}
	encoded, err := bson.Marshal(doc)
	if err != nil {
		return fmt.Errorf("patch %s/%s: %w: %w", collection, id, ErrUnavailable, err)
	}
	s.collections[collection][id] = encoded
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collections[collection], id)
	return nil
}

func (s *MemoryStore) Exists(ctx context.Context, collection, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.collections[collection][id]
	return ok, nil
}

func (s *MemoryStore) List(ctx context.Context, collection, orderBy string, out interface{}) error {
	s.mu.Lock()
	raws := make([][]byte, 0, len(s.collections[collection]))
	for _, raw := range s.collections[collection] {
		raws = append(raws, raw)
	}
	s.mu.Unlock()

	if orderBy != "" {
		type keyed struct {
			key interface{}
			raw []byte
		}
		pairs := make([]keyed, len(raws))
		for i, raw := range raws {
			var doc bson.M
			if err := bson.Unmarshal(raw, &doc); err != nil {
				return fmt.Errorf("list %s: %w: %w", collection, ErrUnavailable, err)
			}
			pairs[i] = keyed{key: doc[orderBy], raw: raw}
		}
		sort.SliceStable(pairs, func(i, j int) bool { return lessValue(pairs[i].key, pairs[j].key) })
		for i, p := range pairs {
			raws[i] = p.raw
		}
	}

	slicePtr := reflect.ValueOf(out)
	if slicePtr.Kind() != reflect.Ptr || slicePtr.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("list %s: out must be a pointer to a slice", collection)
	}
	sliceVal := slicePtr.Elem()
	sliceVal.Set(reflect.MakeSlice(sliceVal.Type(), 0, len(raws)))
	elemType := sliceVal.Type().Elem()
	for _, raw := range raws {
		elem := reflect.New(elemType)
		if err := bson.Unmarshal(raw, elem.Interface()); err != nil {
			return fmt.Errorf("list %s: %w: %w", collection, ErrUnavailable, err)
		}
		sliceVal.Set(reflect.Append(sliceVal, elem.Elem()))
	}
	return nil
}

// lessValue orders sort keys the way Mongo would: numbers (including bson
// date/time values) numerically, strings lexicographically. Mixed or unknown
// types fall back to their printed form.
func lessValue(a, b interface{}) bool {
	an, aNum := toNumber(a)
	bn, bNum := toNumber(b)
	if aNum && bNum {
		return an < bn
	}
	as, aStr := a.(string)
	bs, bStr := b.(string)
	if aStr && bStr {
		return as < bs
	}
	return fmt.Sprint(a) < fmt.Sprint(b)
}

func toNumber(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	case primitive.DateTime:
		return float64(t), true
	}
	return 0, false
}
