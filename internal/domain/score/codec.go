package score

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Saibalraj/Number-Guessing-Game/internal/domain/level"
)

// headerFields is the fixed CSV header, field for field.
var headerFields = []string{"Name", "Level", "Attempts", "Time(s)", "Date", "CorrectNumber"}

// Header is the literal first line of the persisted leaderboard file.
const Header = "Name,Level,Attempts,Time(s),Date,CorrectNumber"

const fieldsPerRecord = 6

// EncodeCSV serializes records to the wire format: the header line followed
// by one line per record. Names containing commas, quotes, or newlines get
// standard CSV quoting with internal quotes doubled.
func EncodeCSV(records []Record) string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	_ = w.Write(headerFields)
	for _, r := range records {
		_ = w.Write([]string{
			r.Name,
			r.Level.Name(),
			strconv.Itoa(r.Attempts),
			strconv.Itoa(r.TimeSeconds),
			r.When.Format(TimeLayout),
			strconv.Itoa(r.Secret),
		})
	}
	w.Flush()
	return sb.String()
}

// DecodeCSV parses the wire format tolerantly. Blank lines, header lines
// (first field "name" or "id", case-insensitive), and malformed records are
// skipped silently; a bad line never aborts parsing of the lines after it.
func DecodeCSV(text string) []Record {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1

	var records []Record
	for {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Malformed quoting; the reader resumes at the next line.
			continue
		}
		rec, ok := parseFields(fields)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	return records
}

// parseFields converts one CSV record's fields to a Record. The boolean is
// false for header rows and anything malformed.
func parseFields(fields []string) (Record, bool) {
	if len(fields) < fieldsPerRecord {
		return Record{}, false
	}
	first := strings.ToLower(strings.TrimSpace(fields[0]))
	if first == "" || first == "name" || first == "id" {
		return Record{}, false
	}
	lvl, err := level.Parse(fields[1])
	if err != nil {
		return Record{}, false
	}
	attempts, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil {
		return Record{}, false
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(fields[3]))
	if err != nil {
		return Record{}, false
	}
	when, err := time.ParseInLocation(TimeLayout, strings.TrimSpace(fields[4]), time.Local)
	if err != nil {
		return Record{}, false
	}
	secret, err := strconv.Atoi(strings.TrimSpace(fields[5]))
	if err != nil {
		return Record{}, false
	}
	return Record{
		Name:        fields[0],
		Level:       lvl,
		Attempts:    attempts,
		TimeSeconds: seconds,
		When:        when,
		Secret:      secret,
	}, true
}
