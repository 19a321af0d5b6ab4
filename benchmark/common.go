package benchmark

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"
)

type StepTiming struct {
	Label    string
	SQL      string
	Rows     int
	Duration time.Duration
	Explain  string
	Vars     []interface{}
}

// TimingReport summarises a set of step durations.
type TimingReport struct {
	Records int
	Total   time.Duration
	P50     time.Duration
	P90     time.Duration
	P99     time.Duration
	Max     time.Duration
}

func SummarizeTimings(timings []StepTiming) TimingReport {
	if len(timings) == 0 {
		return TimingReport{}
	}
	durations := make([]time.Duration, len(timings))
	rep := TimingReport{}
	for i, t := range timings {
		durations[i] = t.Duration
		rep.Total += t.Duration
		rep.Records += t.Rows
	}
	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })

	pct := func(p float64) time.Duration {
		idx := int(math.Ceil(p*float64(len(durations)))) - 1
		if idx < 0 {
			idx = 0
		}
		return durations[idx]
	}
	rep.P50 = pct(0.50)
	rep.P90 = pct(0.90)
	rep.P99 = pct(0.99)
	rep.Max = durations[len(durations)-1]
	return rep
}

func WriteCSV(rep TimingReport, outputCSVPath string, startFreshCSVFile bool) error {
	mode := os.O_APPEND | os.O_CREATE | os.O_WRONLY
	if startFreshCSVFile {
		mode = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	}

	f, err := os.OpenFile(outputCSVPath, mode, 0644)
	if err != nil {
		return fmt.Errorf("failed to open CSV: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	if startFreshCSVFile {
		if err := writer.Write([]string{"Timestamp", "Records", "TotalTime", "p50", "p90", "p99", "Max"}); err != nil {
			return err
		}
	}

	record := []string{
		time.Now().Format("2006-01-02 15:04:05"),
		fmt.Sprintf("%d", rep.Records),
		rep.Total.String(),
		rep.P50.String(),
		rep.P90.String(),
		rep.P99.String(),
		rep.Max.String(),
	}
	if err := writer.Write(record); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

func GetExplainPlan(tx *gorm.DB, sql string, vars []interface{}) string {
	explainSQL := "EXPLAIN " + sql
	rows, err := tx.Raw(explainSQL, vars...).Rows()
	if err != nil {
		return fmt.Sprintf("failed to get explain: %v", err)
	}
	defer rows.Close()

	var output []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err == nil {
			output = append(output, line)
		}
	}
	return strings.Join(output, "\n")
}
