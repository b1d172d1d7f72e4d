package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ppiankov/trustbuddy/internal/model"
)

// ImageAnalyzer scores an encoded image
type ImageAnalyzer interface {
	AnalyzeImage(ctx context.Context, data []byte, filename string) (*model.ImageVerdict, error)
}

// ImageJob analyzes one image file
type ImageJob struct {
	Index    int
	Path     string
	MaxBytes int64
	Analyzer ImageAnalyzer
}

// Execute reads the file and runs the analyzer on it
func (j *ImageJob) Execute(ctx context.Context) Result {
	res := &ImageResult{Index: j.Index, Path: j.Path}

	info, err := os.Stat(j.Path)
	if err != nil {
		res.Error = fmt.Errorf("stat image: %w", err)
		return res
	}
	if j.MaxBytes > 0 && info.Size() > j.MaxBytes {
		res.Error = fmt.Errorf("image is %d bytes, limit is %d", info.Size(), j.MaxBytes)
		return res
	}

	data, err := os.ReadFile(j.Path)
	if err != nil {
		res.Error = fmt.Errorf("read image: %w", err)
		return res
	}

	res.Verdict, res.Error = j.Analyzer.AnalyzeImage(ctx, data, filepath.Base(j.Path))
	return res
}

// ImageResult is the outcome of one ImageJob
type ImageResult struct {
	Index   int
	Path    string
	Verdict *model.ImageVerdict
	Error   error
}

// GetError returns the job error
func (r *ImageResult) GetError() error {
	return r.Error
}

// BatchProcessor scores many images concurrently
type BatchProcessor struct {
	analyzer    ImageAnalyzer
	concurrency int
	maxBytes    int64
}

// NewBatchProcessor creates a batch processor. maxBytes <= 0 disables the size check.
func NewBatchProcessor(analyzer ImageAnalyzer, concurrency int, maxBytes int64) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
		maxBytes:    maxBytes,
	}
}

// ProcessFiles scores every path and returns results in input order
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) []*ImageResult {
	if len(paths) == 0 {
		return []*ImageResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	go func() {
		defer pool.Close()
		for i, path := range paths {
			job := &ImageJob{Index: i, Path: path, MaxBytes: b.maxBytes, Analyzer: b.analyzer}
			if err := pool.Submit(job); err != nil {
				return
			}
		}
	}()

	out := make([]*ImageResult, 0, len(paths))
	for r := range pool.Results() {
		out = append(out, r.(*ImageResult))
	}

	// Paths the pool never reached report the cancellation
	if len(out) < len(paths) {
		done := make(map[int]bool, len(out))
		for _, r := range out {
			done[r.Index] = true
		}
		err := ctx.Err()
		if err == nil {
			err = context.Canceled
		}
		for i, path := range paths {
			if !done[i] {
				out = append(out, &ImageResult{Index: i, Path: path, Error: err})
			}
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// ProcessList scores paths followed by the paths listed in listPath, each once.
// An empty listPath scores paths alone.
func (b *BatchProcessor) ProcessList(ctx context.Context, listPath string, paths ...string) ([]*ImageResult, error) {
	all := append([]string(nil), paths...)
	if listPath != "" {
		listed, err := readPathsFromFile(listPath)
		if err != nil {
			return nil, fmt.Errorf("read paths: %w", err)
		}
		all = append(all, listed...)
	}
	return b.ProcessFiles(ctx, uniquePaths(all)), nil
}

// uniquePaths drops repeats, keeping first occurrences in order
func uniquePaths(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// readPathsFromFile reads one path per line, skipping blanks and comments
func readPathsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
