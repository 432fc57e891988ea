package domain_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"testing/iotest"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mazrean/filehash/internal/adapter"
	"github.com/mazrean/filehash/internal/domain"
	"github.com/mazrean/filehash/internal/port"
)

const helloContent = "hello world\n"

var (
	helloDigests = map[domain.Algorithm]string{
		domain.MD5:        "6f5902ac237024bdd0c176cb93063dc4",
		domain.SHA1:       "22596363b3de40b06f981fb85d82312e8c0ed511",
		domain.SHA256:     "a948904f2f0f479b8f8197694b30184b0d2ed1c1cd2a1ec0fb85d299a192a447",
		domain.SHA512:     "db3974a97f2407b7cae1ae637c0030687a11913274d578492558e39c16c017de84eacdc8c62fe34ee4e12b4b1428817f09b6a2760c3f8a664ceae94d2434a593",
		domain.XXHash64:   "5215e13b207d6d8c",
		domain.BLAKE2b512: "fec91c70284c72d0d4e3684788a90de9338a5b2f47f01fedbe203cafd68708718ae5672d10eca804a8121904047d40d1d6cf11e7a76419357a9469af41f22d01",
		domain.BLAKE3:     "dc5a4edb8240b018124052c330270696f96771a63b45250a5c17d3000e823355",
	}

	emptyDigests = map[domain.Algorithm]string{
		domain.MD5:        "d41d8cd98f00b204e9800998ecf8427e",
		domain.SHA1:       "da39a3ee5e6b4b0d3255bfef95601890afd80709",
		domain.SHA256:     "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		domain.SHA512:     "cf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3e",
		domain.XXHash64:   "ef46db3751d8e999",
		domain.BLAKE2b512: "786a02f742015903c6c6fd852552d272912f4740e15847618a86e217f71f5419d25e1031afee585313896444934eb04b903a685b1448b755d56f701afe9be2ce",
		domain.BLAKE3:     "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262",
	}
)

func newHasher() *domain.FileHasher {
	return domain.NewFileHasher(adapter.NewPrimitiveDigestService())
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestFileHashRequest_Compute_Golden tests known digests of a fixed file for every algorithm.
func TestFileHashRequest_Compute_Golden(t *testing.T) {
	path := writeFile(t, "hello.txt", helloContent)
	hasher := newHasher()

	for alg, want := range helloDigests {
		t.Run(alg.String(), func(t *testing.T) {
			digest, err := hasher.NewRequest(path).WithAlgorithm(alg).Compute(context.Background())
			require.NoError(t, err)

			assert.Equal(t, want, digest.Hex())
			assert.Equal(t, alg, digest.Algorithm())
			assert.Equal(t, alg.Size(), digest.Len())
		})
	}
}

func TestFileHashRequest_Compute_EmptyFile(t *testing.T) {
	path := writeFile(t, "empty", "")
	hasher := newHasher()

	for alg, want := range emptyDigests {
		t.Run(alg.String(), func(t *testing.T) {
			digest, err := hasher.HashFile(context.Background(), path, alg)
			require.NoError(t, err)
			assert.Equal(t, want, digest.Hex())
		})
	}
}

func TestFileHashRequest_Compute_NotFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")
	hasher := newHasher()

	for _, alg := range domain.Algorithms() {
		t.Run(alg.String(), func(t *testing.T) {
			_, err := hasher.Request(missing, alg).Compute(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrFileNotFound)
			assert.ErrorIs(t, err, os.ErrNotExist)
			assert.NotErrorIs(t, err, domain.ErrNotRegularFile)
			assert.Equal(t, "file-not-found", domain.ErrorKind(err))
		})
	}
}

func TestFileHashRequest_Compute_Directory(t *testing.T) {
	dir := t.TempDir()
	hasher := newHasher()

	_, err := hasher.Request(dir, domain.SHA256).Compute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFileNotFound)
	assert.ErrorIs(t, err, domain.ErrNotRegularFile)
	assert.Contains(t, err.Error(), "directory")
	assert.Equal(t, "not-regular-file", domain.ErrorKind(err))
}

func TestFileHashRequest_Compute_SymlinkToFile(t *testing.T) {
	target := writeFile(t, "target.txt", helloContent)
	link := filepath.Join(t.TempDir(), "link.txt")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	digest, err := newHasher().HashFile(context.Background(), link, domain.MD5)
	require.NoError(t, err)
	assert.Equal(t, helloDigests[domain.MD5], digest.Hex())
}

func TestFileHashRequest_Compute_Idempotent(t *testing.T) {
	path := writeFile(t, "hello.txt", helloContent)
	hasher := newHasher()

	first, err := hasher.Request(path, domain.SHA512).Compute(context.Background())
	require.NoError(t, err)
	second, err := hasher.Request(path, domain.SHA512).Compute(context.Background())
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestFileHashRequest_Compute_SingleUse(t *testing.T) {
	path := writeFile(t, "hello.txt", helloContent)
	req := newHasher().Request(path, domain.SHA1)
	alias := req

	_, err := req.Compute(context.Background())
	require.NoError(t, err)

	_, err = req.Compute(context.Background())
	assert.ErrorIs(t, err, domain.ErrRequestConsumed)

	_, err = alias.Compute(context.Background())
	assert.ErrorIs(t, err, domain.ErrRequestConsumed)

	// Re-attaching an algorithm yields a fresh request.
	digest, err := req.WithAlgorithm(domain.SHA1).Compute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, helloDigests[domain.SHA1], digest.Hex())
}

func TestFileHashRequest_Compute_SingleUseConcurrent(t *testing.T) {
	path := writeFile(t, "hello.txt", helloContent)
	req := newHasher().Request(path, domain.MD5)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := req.Compute(context.Background()); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
}

func TestFileHashRequest_Compute_ZeroValue(t *testing.T) {
	var req domain.FileHashRequest

	_, err := req.Compute(context.Background())
	assert.ErrorIs(t, err, domain.ErrAlgorithmUnset)
}

func TestFileHashRequest_Compute_InvalidAlgorithm(t *testing.T) {
	path := writeFile(t, "hello.txt", helloContent)
	hasher := newHasher()

	_, err := hasher.Request(path, domain.AlgorithmUnset).Compute(context.Background())
	assert.ErrorIs(t, err, domain.ErrAlgorithmUnset)

	_, err = hasher.Request(path, domain.Algorithm(99)).Compute(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnsupportedAlgorithm)
}

func TestFileHashRequest_Compute_CanceledContext(t *testing.T) {
	path := writeFile(t, "hello.txt", helloContent)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := newHasher().Request(path, domain.SHA256)

	_, err := req.Compute(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	// The canceled attempt did not consume the request.
	digest, err := req.Compute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, helloDigests[domain.SHA256], digest.Hex())
}

func TestFileHashRequest_Compute_FileSystem(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/data/hello.txt", []byte(helloContent), 0o644))
	require.NoError(t, fsys.MkdirAll("/data/sub", 0o755))
	hasher := domain.NewFileHasher(adapter.NewPrimitiveDigestService(), domain.WithFileSystem(fsys))

	digest, err := hasher.HashFile(context.Background(), "/data/hello.txt", domain.SHA256)
	require.NoError(t, err)
	assert.Equal(t, helloDigests[domain.SHA256], digest.Hex())

	_, err = hasher.HashFile(context.Background(), "/data/missing.txt", domain.SHA256)
	assert.ErrorIs(t, err, domain.ErrFileNotFound)

	_, err = hasher.HashFile(context.Background(), "/data/sub", domain.SHA256)
	assert.ErrorIs(t, err, domain.ErrNotRegularFile)
}

func TestFileHashRequest_Compute_ReadFailure(t *testing.T) {
	errRead := errors.New("input/output error")
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/data/hello.txt", []byte(helloContent), 0o644))
	hasher := domain.NewFileHasher(
		adapter.NewPrimitiveDigestService(),
		domain.WithFileSystem(&failingReadFs{Fs: fsys, after: 4, err: errRead}),
	)

	_, err := hasher.HashFile(context.Background(), "/data/hello.txt", domain.MD5)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIO)
	assert.ErrorIs(t, err, errRead)
	assert.NotErrorIs(t, err, domain.ErrFileNotFound)
	assert.NotErrorIs(t, err, domain.ErrHash)
	assert.Equal(t, "io", domain.ErrorKind(err))
}

func TestFileHashRequest_WithAlgorithm_Immutable(t *testing.T) {
	hasher := newHasher()

	pending := hasher.NewRequest("some/path")
	md5Req := pending.WithAlgorithm(domain.MD5)
	shaReq := md5Req.WithAlgorithm(domain.SHA256)

	assert.Equal(t, "some/path", pending.Path())
	assert.Equal(t, "some/path", md5Req.Path())
	assert.Equal(t, "some/path", shaReq.Path())
	assert.Equal(t, domain.MD5, md5Req.Algorithm())
	assert.Equal(t, domain.SHA256, shaReq.Algorithm())
}

func TestFileHashRequest_Compute_EngineFailures(t *testing.T) {
	path := writeFile(t, "hello.txt", helloContent)
	errWrite := errors.New("write failed")

	tests := []struct {
		service port.DigestService
		wantErr error
		name    string
	}{
		{
			name:    "engine construction fails",
			service: &stubDigestService{newErr: errors.New("no engine")},
			wantErr: domain.ErrHash,
		},
		{
			name:    "write fails",
			service: &stubDigestService{engine: &stubEngine{writeErr: errWrite, size: 32}},
			wantErr: errWrite,
		},
		{
			name:    "short write",
			service: &stubDigestService{engine: &stubEngine{short: true, size: 32}},
			wantErr: domain.ErrHash,
		},
		{
			name:    "engine size mismatch",
			service: &stubDigestService{engine: &stubEngine{size: 4}},
			wantErr: domain.ErrHash,
		},
		{
			name:    "wrong digest length",
			service: &stubDigestService{engine: &stubEngine{size: 32, sumLen: 4}},
			wantErr: domain.ErrHash,
		},
		{
			name:    "algorithm not registered",
			service: &stubDigestService{names: []string{"md5"}},
			wantErr: domain.ErrUnsupportedAlgorithm,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hasher := domain.NewFileHasher(tt.service)

			_, err := hasher.HashFile(context.Background(), path, domain.SHA256)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrHash)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, "hash", domain.ErrorKind(err))
		})
	}
}

// stubDigestService hands out a preconfigured engine.
type stubDigestService struct {
	engine *stubEngine
	newErr error
	names  []string
}

func (s *stubDigestService) NewEngine(string) (port.DigestEngine, error) {
	if s.newErr != nil {
		return nil, s.newErr
	}
	return s.engine, nil
}

func (s *stubDigestService) Algorithms() []string {
	if s.names != nil {
		return s.names
	}
	return []string{"sha256"}
}

type stubEngine struct {
	writeErr error
	size     int
	sumLen   int
	short    bool
}

func (e *stubEngine) Write(p []byte) (int, error) {
	if e.writeErr != nil {
		return 0, e.writeErr
	}
	if e.short && len(p) > 0 {
		return len(p) - 1, nil
	}
	return len(p), nil
}

func (e *stubEngine) Sum() []byte {
	if e.sumLen > 0 {
		return make([]byte, e.sumLen)
	}
	return make([]byte, e.size)
}

func (e *stubEngine) Size() int {
	return e.size
}

// failingReadFs serves files whose reads fail after the first few bytes.
type failingReadFs struct {
	afero.Fs
	err   error
	after int64
}

func (f *failingReadFs) Open(name string) (afero.File, error) {
	file, err := f.Fs.Open(name)
	if err != nil {
		return nil, err
	}
	return &failingReadFile{
		File: file,
		r:    io.MultiReader(io.LimitReader(file, f.after), iotest.ErrReader(f.err)),
	}, nil
}

type failingReadFile struct {
	afero.File
	r io.Reader
}

func (f *failingReadFile) Read(p []byte) (int, error) {
	return f.r.Read(p)
}
