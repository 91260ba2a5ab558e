package names

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// markupRunes символы разметки, вырезаемые из отображаемых имён.
// Фильтр стоит до записи и до рассылки: несанированное имя не должно
// попасть ни в хранилище, ни к другим клиентам.
const markupRunes = `<>&"'` + "`"

// tagPattern выкусывает целые теги вида <...>: из "<b>Иван</b>"
// должно остаться "Иван", а не остатки разметки
var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Service отвечает за санацию отображаемых имён, чёрный список слов
// и справочник имён для type-ahead подсказок
type Service struct {
	maxLength    int
	displayNames []string
	badWords     []string
	logger       Logger
}

// NewService создает сервис и загружает справочники.
// Отсутствующие файлы не являются ошибкой: сервис работает
// с пустыми списками.
func NewService(displayNamesFile, badWordsFile string, maxLength int, logger Logger) *Service {
	s := &Service{
		maxLength: maxLength,
		logger:    logger,
	}

	s.displayNames = loadLines(displayNamesFile, logger)
	logger.Info("names: loaded %d display names from %s", len(s.displayNames), displayNamesFile)

	for _, w := range loadLines(badWordsFile, logger) {
		s.badWords = append(s.badWords, strings.ToLower(w))
	}
	logger.Info("names: loaded %d blocked words from %s", len(s.badWords), badWordsFile)

	return s
}

// Sanitize нормализует сырое имя: вырезает управляющие символы и
// разметку, схлопывает пробелы, обрезает до допустимой длины.
// Возвращает ErrInvalidName для пустого результата или совпадения
// с чёрным списком (регистронезависимый поиск подстроки).
func (s *Service) Sanitize(raw string) (string, error) {
	// Сначала целые теги, затем одиночные символы разметки:
	// иначе от "<b>" остался бы мусор "b"
	raw = tagPattern.ReplaceAllString(raw, " ")

	var b strings.Builder
	for _, r := range raw {
		if unicode.IsControl(r) || strings.ContainsRune(markupRunes, r) {
			continue
		}
		b.WriteRune(r)
	}

	// Схлопываем последовательности пробельных символов в один пробел
	clean := strings.Join(strings.Fields(b.String()), " ")

	if runes := []rune(clean); len(runes) > s.maxLength {
		clean = strings.TrimSpace(string(runes[:s.maxLength]))
	}

	if clean == "" {
		return "", fmt.Errorf("%w: empty after normalization", ErrInvalidName)
	}

	lower := strings.ToLower(clean)
	for _, word := range s.badWords {
		if word != "" && strings.Contains(lower, word) {
			return "", fmt.Errorf("%w: contains blocked word", ErrInvalidName)
		}
	}

	return clean, nil
}

// DisplayNames возвращает справочник имён для type-ahead подсказок
func (s *Service) DisplayNames() []string {
	return s.displayNames
}

// loadLines читает непустые строки файла, пропуская комментарии (#)
func loadLines(path string, logger Logger) []string {
	if path == "" {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("names: %s not found, using empty list", path)
		} else {
			logger.Error("names: failed to open %s: %v", path, err)
		}
		return nil
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		logger.Error("names: failed to read %s: %v", path, err)
	}

	return lines
}
