package s3mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type fakeObjects struct {
	objects map[string][]byte
	putErr  error
	getErr  error
}

func (f *fakeObjects) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	b, ok := f.objects[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(b))}, nil
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*in.Bucket+"/"+*in.Key] = b
	return &s3.PutObjectOutput{}, nil
}

func TestMirror_MergesAttributesPerKey(t *testing.T) {
	objects := &fakeObjects{objects: map[string][]byte{}}
	m := NewWithClient(objects, "souls", "/metadata/")
	m.now = func() time.Time { return time.Unix(1700000000, 0) }
	ctx := context.Background()

	if err := m.UpdateAttributes(ctx, "asset-1", map[string]string{"status": "Dormant", "xp": "0"}); err != nil {
		t.Fatalf("first update: %v", err)
	}
	if err := m.UpdateAttributes(ctx, "asset-1", map[string]string{"xp": "150", "last_quest": "main-stage"}); err != nil {
		t.Fatalf("second update: %v", err)
	}

	raw, ok := objects.objects["souls/metadata/asset-1.json"]
	if !ok {
		t.Fatalf("object not written under expected key, have %v", objects.objects)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.AssetID != "asset-1" || doc.Attributes["status"] != "Dormant" || doc.Attributes["xp"] != "150" || doc.Attributes["last_quest"] != "main-stage" {
		t.Fatalf("unexpected document: %+v", doc)
	}
}

func TestMirror_SurfacesStoreErrors(t *testing.T) {
	objects := &fakeObjects{objects: map[string][]byte{}, putErr: errors.New("access denied")}
	m := NewWithClient(objects, "souls", "")
	if err := m.UpdateAttributes(context.Background(), "asset-1", map[string]string{"xp": "1"}); err == nil {
		t.Fatal("expected put error")
	}

	objects.putErr = nil
	objects.getErr = errors.New("timeout")
	if err := m.UpdateAttributes(context.Background(), "asset-1", map[string]string{"xp": "1"}); err == nil {
		t.Fatal("expected get error")
	}
}

func TestMirror_KeyWithoutPrefix(t *testing.T) {
	m := NewWithClient(&fakeObjects{}, "souls", "")
	got, err := m.Key("asset-9")
	if err != nil {
		t.Fatalf("key: %v", err)
	}
	if got != "asset-9.json" {
		t.Fatalf("key got=%s want=asset-9.json", got)
	}
}

func TestMirror_RejectsIDsOutsidePrefix(t *testing.T) {
	objects := &fakeObjects{objects: map[string][]byte{}}
	m := NewWithClient(objects, "souls", "metadata")
	for _, id := range []string{"", ".", "..", "../escape", "a/b", `..\escape`} {
		err := m.UpdateAttributes(context.Background(), id, map[string]string{"xp": "1"})
		if !errors.Is(err, ErrInvalidAssetID) {
			t.Fatalf("id %q: expected ErrInvalidAssetID, got %v", id, err)
		}
	}
	if len(objects.objects) != 0 {
		t.Fatalf("rejected ids must not write objects, have %v", objects.objects)
	}
}

func TestMirror_DropsUpdateFromOlderLedgerVersion(t *testing.T) {
	objects := &fakeObjects{objects: map[string][]byte{}}
	m := NewWithClient(objects, "souls", "")
	ctx := context.Background()

	if err := m.UpdateAttributes(ctx, "asset-1", map[string]string{"xp": "1150", "ledger_version": "3"}); err != nil {
		t.Fatalf("newer update: %v", err)
	}
	if err := m.UpdateAttributes(ctx, "asset-1", map[string]string{"xp": "1100", "ledger_version": "2"}); err != nil {
		t.Fatalf("older update: %v", err)
	}

	doc, err := m.Load(ctx, "asset-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Attributes["xp"] != "1150" || doc.Attributes["ledger_version"] != "3" {
		t.Fatalf("stale update overwrote document: %+v", doc.Attributes)
	}
}
