package extract

import (
	"regexp"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Emirken/scout-backend/pkg/models"
)

// fbref ids are exactly eight lowercase hex characters.
var fbrefIDRe = regexp.MustCompile(`^[a-f0-9]{8}$`)

// Validator gatekeeps assembled records before persistence. Identity
// problems (bad id, missing name) reject the record; quality problems
// (placeholder team or league, implausible age) only log warnings, since
// a partially-known player is still worth storing.
type Validator struct {
	validate *validator.Validate
	log      *zap.SugaredLogger
}

// NewValidator builds a Validator. A nil logger silences warnings.
func NewValidator(log *zap.SugaredLogger) *Validator {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
}

// Validate returns an error for records with identity defects and logs
// warnings for quality defects.
func (v *Validator) Validate(record *models.PlayerRecord) error {
	if record == nil {
		return errors.New("nil player record")
	}
	if !fbrefIDRe.MatchString(record.FbrefID) {
		return errors.Newf("invalid fbref id %q: want 8 lowercase hex characters", record.FbrefID)
	}
	if err := v.validate.Struct(record); err != nil {
		return errors.Wrap(err, "player record validation")
	}

	if record.Team == models.UnknownTeam {
		v.log.Warnw("player stored with unknown team", "id", record.FbrefID, "name", record.FullName)
	}
	if record.League == models.UnknownLeague {
		v.log.Warnw("player stored with unknown league", "id", record.FbrefID, "name", record.FullName)
	}
	if record.Age != 0 && (record.Age < 15 || record.Age > 50) {
		v.log.Warnw("player stored with implausible age", "id", record.FbrefID, "age", record.Age)
	}
	return nil
}
