package corpus

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"mockmate/interview/internal/models"
)

// questionFile is the on-disk record shape:
// {track, company_style, difficulty, questions: [{title, prompt, tags, followups}]}
type questionFile struct {
	Track        string            `yaml:"track"`
	CompanyStyle string            `yaml:"company_style"`
	Difficulty   string            `yaml:"difficulty"`
	Questions    []models.Question `yaml:"questions"`
}

// Loader walks a track/company/difficulty-structured directory of YAML
// question files. A file is skipped, with a warning, when its internal
// metadata disagrees with its path.
type Loader struct {
	dir    string
	logger *zap.Logger
}

func NewLoader(dir string, logger *zap.Logger) *Loader {
	return &Loader{dir: dir, logger: logger}
}

func (l *Loader) Load() ([]models.Question, error) {
	var questions []models.Question

	err := filepath.WalkDir(l.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		loaded, err := l.loadFile(path)
		if err != nil {
			l.logger.Warn("skipping unreadable question file",
				zap.String("path", path), zap.Error(err))
			return nil
		}
		questions = append(questions, loaded...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk question directory %s: %w", l.dir, err)
	}

	l.logger.Info("question corpus loaded",
		zap.String("dir", l.dir),
		zap.Int("questions", len(questions)))
	return questions, nil
}

func (l *Loader) loadFile(path string) ([]models.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file questionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}

	track := models.Track(strings.ToLower(file.Track))
	style := models.CompanyStyle(strings.ToLower(file.CompanyStyle))
	difficulty := models.Difficulty(strings.ToLower(file.Difficulty))

	if !track.Valid() || !style.Valid() || !difficulty.Valid() {
		return nil, fmt.Errorf("invalid metadata track=%q company_style=%q difficulty=%q",
			file.Track, file.CompanyStyle, file.Difficulty)
	}

	if !pathAgrees(l.dir, path, track, style, difficulty) {
		l.logger.Warn("question file metadata disagrees with its path, skipping",
			zap.String("path", path),
			zap.String("track", string(track)),
			zap.String("company_style", string(style)),
			zap.String("difficulty", string(difficulty)))
		return nil, nil
	}

	out := make([]models.Question, 0, len(file.Questions))
	for i, q := range file.Questions {
		if strings.TrimSpace(q.Prompt) == "" {
			l.logger.Warn("question with empty prompt, skipping",
				zap.String("path", path), zap.Int("index", i))
			continue
		}
		q.ID = questionID(track, style, difficulty, i)
		q.Track = track
		q.CompanyStyle = style
		q.Difficulty = difficulty
		out = append(out, q)
	}
	return out, nil
}

// pathAgrees checks that track, company style, and difficulty each appear as
// a path segment (or the filename stem) of the file's location under root.
func pathAgrees(root, path string, track models.Track, style models.CompanyStyle, difficulty models.Difficulty) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = strings.ToLower(filepath.ToSlash(rel))

	segments := strings.Split(rel, "/")
	if n := len(segments); n > 0 {
		stem := strings.TrimSuffix(segments[n-1], filepath.Ext(segments[n-1]))
		segments[n-1] = stem
	}

	present := make(map[string]bool, len(segments))
	for _, seg := range segments {
		present[seg] = true
	}
	return present[string(track)] && present[string(style)] && present[string(difficulty)]
}

// questionID derives a stable ID from a question's corpus coordinates so
// repeated loads of the same corpus index identically.
func questionID(track models.Track, style models.CompanyStyle, difficulty models.Difficulty, index int) string {
	return fmt.Sprintf("%s/%s/%s/%d", track, style, difficulty, index)
}
