package main

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"voice-expense/internal/models"
	"voice-expense/internal/repository"

	"go.uber.org/zap"
)

// ProcessedFile represents an imported file in the cache.
type ProcessedFile struct {
	FilePath    string    `json:"file_path"`
	FileHash    string    `json:"file_hash"`
	Records     int       `json:"records"`
	ProcessedAt time.Time `json:"processed_at"`
}

// CacheData stores information about imported files.
type CacheData struct {
	ProcessedFiles map[string]ProcessedFile `json:"processed_files"` // key: file path
}

type importResult struct {
	Files        int
	SkippedFiles int
	Imported     int
	Rejected     int
}

type seeder struct {
	store      repository.HistoryStore
	categories models.CategorySet
	logger     *zap.Logger
	now        func() time.Time
}

func (s *seeder) run(ctx context.Context, sources []string, cacheFile string) (importResult, error) {
	var result importResult
	if s.now == nil {
		s.now = time.Now
	}

	cache, err := loadCache(cacheFile)
	if err != nil {
		s.logger.Warn("Failed to load cache, will process all files", zap.Error(err))
		cache = &CacheData{ProcessedFiles: make(map[string]ProcessedFile)}
	}

	files, err := collectFiles(sources)
	if err != nil {
		return result, err
	}

	history, err := s.store.Load(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to load history: %w", err)
	}

	processed := make(map[string]ProcessedFile)
	for _, path := range files {
		result.Files++

		fileHash, err := calculateFileHash(path)
		if err != nil {
			s.logger.Warn("Failed to hash file, skipping", zap.String("path", path), zap.Error(err))
			result.SkippedFiles++
			continue
		}
		if cached, exists := cache.ProcessedFiles[path]; exists && cached.FileHash == fileHash {
			s.logger.Info("File already imported, skipping",
				zap.String("path", path),
				zap.Time("processed_at", cached.ProcessedAt),
			)
			result.SkippedFiles++
			continue
		}

		records, rejected, err := s.readLegacyFile(path)
		if err != nil {
			s.logger.Error("Failed to read legacy file", zap.String("path", path), zap.Error(err))
			result.SkippedFiles++
			continue
		}

		history = append(history, records...)
		result.Imported += len(records)
		result.Rejected += rejected
		processed[path] = ProcessedFile{
			FilePath:    path,
			FileHash:    fileHash,
			Records:     len(records),
			ProcessedAt: s.now(),
		}
		s.logger.Info("Read legacy file",
			zap.String("path", path),
			zap.Int("records", len(records)),
			zap.Int("rejected", rejected),
		)
	}

	if len(processed) == 0 {
		return result, nil
	}

	if err := s.store.Save(ctx, history); err != nil {
		return result, fmt.Errorf("failed to save history: %w", err)
	}

	// the cache only advances once the records are stored
	for path, pf := range processed {
		cache.ProcessedFiles[path] = pf
	}
	if err := saveCache(cacheFile, cache); err != nil {
		s.logger.Warn("Failed to save cache", zap.Error(err))
	} else {
		s.logger.Info("Cache saved", zap.Int("processed_files", len(cache.ProcessedFiles)))
	}

	return result, nil
}

// readLegacyFile parses a saved history file. Records with a blank item, a
// negative amount or an unreadable date are dropped and counted.
func (s *seeder) readLegacyFile(path string) ([]models.Expense, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read file: %w", err)
	}

	var raw []models.Expense
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, fmt.Errorf("failed to parse file: %w", err)
	}

	records := make([]models.Expense, 0, len(raw))
	rejected := 0
	for i, e := range raw {
		e.Item = strings.TrimSpace(e.Item)
		if _, ok := e.ParsedDate(); e.Item == "" || e.Amount < 0 || !ok {
			s.logger.Warn("Skipping invalid record",
				zap.String("path", path),
				zap.Int("index", i),
				zap.String("item", e.Item),
			)
			rejected++
			continue
		}
		e.Category = s.categories.Normalize(e.Category)
		records = append(records, e)
	}
	return records, rejected, nil
}

// collectFiles expands directories to the *.json files they contain.
func collectFiles(sources []string) ([]string, error) {
	var files []string
	for _, src := range sources {
		info, err := os.Stat(src)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", src, err)
		}
		if !info.IsDir() {
			files = append(files, src)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(src, "*.json"))
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if filepath.Base(m) != ".seed_cache.json" {
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// loadCache loads the cache of imported files
func loadCache(cacheFile string) (*CacheData, error) {
	cache := &CacheData{
		ProcessedFiles: make(map[string]ProcessedFile),
	}

	data, err := os.ReadFile(cacheFile)
	if os.IsNotExist(err) {
		return cache, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}
	if len(data) == 0 {
		return cache, nil
	}

	if err := json.Unmarshal(data, cache); err != nil {
		return nil, fmt.Errorf("failed to parse cache file: %w", err)
	}
	if cache.ProcessedFiles == nil {
		cache.ProcessedFiles = make(map[string]ProcessedFile)
	}
	return cache, nil
}

func saveCache(cacheFile string, cache *CacheData) error {
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(cacheFile), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(cacheFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	return nil
}

// calculateFileHash calculates MD5 hash of a file
func calculateFileHash(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", fmt.Errorf("failed to calculate hash: %w", err)
	}
	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}
