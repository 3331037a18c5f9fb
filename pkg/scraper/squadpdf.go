package scraper

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/Emirken/scout-backend/pkg/models"
	"github.com/Emirken/scout-backend/pkg/normalize"
)

// Squad-sheet lines look like "7 Luis Diaz FW 28" or "23 Andrew
// Robertson DF": shirt number, name, position code, optional age.
var squadLineRe = regexp.MustCompile(`^\s*(\d{1,2})\s+([A-Za-zÀ-ÿ'. -]+?)\s+(GK|DF|MF|FW)\b\s*(\d{1,2})?\s*$`)

// SquadSheetReader is the listing fallback for leagues whose stats pages
// cannot be fetched: some federations publish squad sheets as PDFs, and
// those still name every registered player.
type SquadSheetReader struct {
	timeout time.Duration
	log     *zap.SugaredLogger
}

// NewSquadSheetReader builds a reader; a zero timeout defaults to 60s
// since squad-sheet PDFs can run to several megabytes.
func NewSquadSheetReader(timeout time.Duration, log *zap.SugaredLogger) *SquadSheetReader {
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &SquadSheetReader{timeout: timeout, log: log}
}

// GetLeaguePlayers downloads the league's squad-sheet PDF and parses every
// recognizable player line into a BasicInfo. Players found this way carry
// no fbref id or URL yet; the caller resolves those separately.
func (r *SquadSheetReader) GetLeaguePlayers(ctx context.Context, league, pdfURL string) ([]models.BasicInfo, error) {
	localPath := filepath.Join(os.TempDir(), "squad-"+sanitizeFilename(league)+".pdf")
	if err := r.download(ctx, pdfURL, localPath); err != nil {
		return nil, err
	}
	defer os.Remove(localPath)

	text, err := readPDFText(localPath)
	if err != nil {
		return nil, err
	}

	players := ParseSquadSheet(text, league)
	r.log.Infow("squad sheet parsed", "league", league, "players", len(players))
	return players, nil
}

// download fetches the PDF to a local file.
func (r *SquadSheetReader) download(ctx context.Context, url, localPath string) error {
	r.log.Infow("downloading squad sheet", "url", url, "path", localPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "building request")
	}

	client := &http.Client{Timeout: r.timeout}
	resp, err := client.Do(req)
	if err != nil {
		return errors.Wrap(err, "fetching squad sheet")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Newf("squad sheet download: status %d", resp.StatusCode)
	}

	out, err := os.Create(localPath)
	if err != nil {
		return errors.Wrap(err, "creating local file")
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return errors.Wrap(err, "saving squad sheet")
	}
	return nil
}

// readPDFText extracts the plain text content of a PDF file.
func readPDFText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "opening pdf")
	}
	defer f.Close()

	plainText, err := reader.GetPlainText()
	if err != nil {
		return "", errors.Wrap(err, "extracting pdf text")
	}
	content, err := io.ReadAll(plainText)
	if err != nil {
		return "", errors.Wrap(err, "reading pdf text")
	}
	return string(content), nil
}

// ParseSquadSheet turns raw squad-sheet text into BasicInfo entries, one
// per line matching the shirt-number/name/position pattern. Club context
// comes from section headers, lines that name no player but end with a
// recognizable squad marker.
func ParseSquadSheet(text, league string) []models.BasicInfo {
	var players []models.BasicInfo
	currentTeam := ""

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := squadLineRe.FindStringSubmatch(line); m != nil {
			info := models.BasicInfo{
				Name:     normalize.CleanText(m[2]),
				Team:     currentTeam,
				League:   league,
				Position: m[3],
			}
			if m[4] != "" {
				info.Age = normalize.ParseAge(m[4])
			}
			players = append(players, info)
			continue
		}

		if team, ok := squadHeader(line); ok {
			currentTeam = team
		}
	}
	return players
}

// squadHeader recognizes "<Club Name> Squad" / "<Club Name> - First Team"
// section headers. The suffix comparison folds case on the original line
// so club names whose lowercase form has a different byte length (Turkish
// dotted capitals and the like) never shift the cut point.
func squadHeader(line string) (string, bool) {
	for _, marker := range []string{" squad", " first team", " roster"} {
		if len(line) < len(marker) {
			continue
		}
		cut := len(line) - len(marker)
		if !strings.EqualFold(line[cut:], marker) {
			continue
		}
		team := normalize.CleanText(line[:cut])
		team = strings.TrimSuffix(team, " -")
		return team, team != ""
	}
	return "", false
}

func sanitizeFilename(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, s)
}
