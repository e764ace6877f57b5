package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wakaf-tunai/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func TestLocalStorePut(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(config.LocalStorageConfig{Dir: dir, URLPrefix: "https://wakaf.test/uploads/"})

	url, err := store.Put(context.Background(), Object{
		Container:   "proof-of-transfer",
		Name:        "AB12CD34-1700000000000-bukti transfer.png",
		ContentType: "image/png",
		Body:        []byte("png-bytes"),
	})
	if err != nil {
		t.Fatalf("put failed: %v", err)
	}
	want := "https://wakaf.test/uploads/proof-of-transfer/AB12CD34-1700000000000-bukti%20transfer.png"
	if url != want {
		t.Fatalf("url want %s got %s", want, url)
	}
	content, err := os.ReadFile(filepath.Join(dir, "proof-of-transfer", "AB12CD34-1700000000000-bukti transfer.png"))
	if err != nil || string(content) != "png-bytes" {
		t.Fatalf("stored content mismatch: %q %v", content, err)
	}

	_, err = store.Put(context.Background(), Object{Container: "proof-of-transfer", Name: "AB12CD34-1700000000000-bukti transfer.png", Body: []byte("x")})
	if err == nil {
		t.Fatalf("existing object must not be overwritten")
	}
}

func TestLocalStoreRejectsTraversal(t *testing.T) {
	store := NewLocalStore(config.LocalStorageConfig{Dir: t.TempDir()})
	for _, name := range []string{"../etc/passwd", "a/b.png", "", ".."} {
		_, err := store.Put(context.Background(), Object{Container: "certificates", Name: name, Body: []byte("x")})
		if !errors.Is(err, ErrInvalidObjectName) {
			t.Fatalf("name %q want ErrInvalidObjectName got %v", name, err)
		}
	}
}

func TestS3StorePutAgainstFakeEndpoint(t *testing.T) {
	var gotPath, gotType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("want PUT got %s", r.Method)
		}
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := s3.New(s3.Options{
		Region:       "ap-southeast-1",
		BaseEndpoint: aws.String(srv.URL),
		UsePathStyle: true,
		Credentials:  aws.AnonymousCredentials{},
	})
	cfg := config.S3StorageConfig{Bucket: "wakaf", Region: "ap-southeast-1", Endpoint: srv.URL, UsePathStyle: true}
	store := NewS3StoreWithClient(client, cfg)

	url, err := store.Put(context.Background(), Object{
		Container:   "certificates",
		Name:        "cert_AB12CD34_1700000000000.jpg",
		ContentType: "image/jpeg",
		Body:        []byte("jpeg-bytes"),
	})
	if err != nil {
		t.Fatalf("s3 put failed: %v", err)
	}
	if gotPath != "/wakaf/certificates/cert_AB12CD34_1700000000000.jpg" {
		t.Fatalf("unexpected request path %s", gotPath)
	}
	if gotType != "image/jpeg" || gotBody != "jpeg-bytes" {
		t.Fatalf("unexpected upload type=%s body=%s", gotType, gotBody)
	}
	if !strings.HasSuffix(url, "/wakaf/certificates/cert_AB12CD34_1700000000000.jpg") {
		t.Fatalf("unexpected public url %s", url)
	}
}

func TestPublicBaseURLDefaultsToVirtualHost(t *testing.T) {
	got := publicBaseURL(config.S3StorageConfig{Bucket: "wakaf", Region: "ap-southeast-3"})
	if got != "https://wakaf.s3.ap-southeast-3.amazonaws.com" {
		t.Fatalf("unexpected base url %s", got)
	}
}
