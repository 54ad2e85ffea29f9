package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/journalkeeper/internal/client/models"
	"github.com/dmitrijs2005/journalkeeper/internal/common"
	"github.com/olebedev/when"
	whencommon "github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var whenParser = newWhenParser()

func newWhenParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(whencommon.All...)
	return w
}

// parseWhen turns a phrase such as "yesterday 9pm", "last friday" or
// "2025-06-01 14:30" into a moment relative to now. An empty phrase is now.
// Moments in the future are rejected.
func parseWhen(phrase string, now time.Time) (time.Time, error) {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" || strings.EqualFold(phrase, "now") {
		return now, nil
	}

	at, err := parseExact(phrase, now.Location())
	if err != nil {
		r, perr := whenParser.Parse(phrase, now)
		if perr != nil {
			return time.Time{}, fmt.Errorf("%w: %q: %v", common.ErrParse, phrase, perr)
		}
		if r == nil {
			return time.Time{}, fmt.Errorf("%w: cannot understand %q", common.ErrParse, phrase)
		}
		at = r.Time
	}

	if at.After(now) {
		return time.Time{}, fmt.Errorf("%w: %s is in the future", common.ErrParse, at.Format("2006-01-02 15:04"))
	}
	return at, nil
}

func parseExact(phrase string, loc *time.Location) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, phrase, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", common.ErrParse, phrase)
}

// parseFilter reads "[yyyy [mm [dd]]]" list arguments.
func parseFilter(args []string) (models.DateFilter, error) {
	var f models.DateFilter
	if len(args) > 3 {
		return f, fmt.Errorf("%w: usage: list [yyyy [mm [dd]]]", common.ErrParse)
	}

	fields := []*int{&f.Year, &f.Month, &f.Day}
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return models.DateFilter{}, fmt.Errorf("%w: %q is not a number", common.ErrParse, arg)
		}
		*fields[i] = n
	}

	if err := f.Validate(); err != nil {
		return models.DateFilter{}, err
	}
	return f, nil
}
