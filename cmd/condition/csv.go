package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-condition/dsp/core"
)

// series is a parsed CSV time series.
type series struct {
	header []string
	time   []float64
	signal *core.Matrix
}

func (s series) with(signal *core.Matrix, time []float64) series {
	return series{header: s.header, time: time, signal: signal}
}

func (s series) channelName(j int) string {
	if j+1 < len(s.header) {
		return s.header[j+1]
	}

	return fmt.Sprintf("ch%d", j+1)
}

func readSeries(r io.Reader) (series, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	records, err := cr.ReadAll()
	if err != nil {
		return series{}, err
	}

	var s series

	if len(records) > 0 && !numericRecord(records[0]) {
		s.header = records[0]
		records = records[1:]
	}

	if len(records) == 0 {
		return series{}, errors.New("no samples")
	}

	width := len(records[0])
	if width < 2 {
		return series{}, errors.New("need a time column and at least one channel")
	}

	s.time = make([]float64, len(records))
	s.signal = core.NewMatrix(len(records), width-1)

	for i, rec := range records {
		for j, field := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return series{}, fmt.Errorf("row %d, column %d: %w", i+1, j+1, err)
			}

			if j == 0 {
				s.time[i] = v
			} else {
				s.signal.Set(i, j-1, v)
			}
		}
	}

	return s, nil
}

func numericRecord(rec []string) bool {
	for _, field := range rec {
		if _, err := strconv.ParseFloat(strings.TrimSpace(field), 64); err != nil {
			return false
		}
	}

	return true
}

func writeSeries(w io.Writer, s series) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, s.signal.Cols()+1)
	if len(s.header) > 0 {
		header = append(header, s.header[0])
	} else {
		header = append(header, "time")
	}

	for j := range s.signal.Cols() {
		header = append(header, s.channelName(j))
	}

	if err := cw.Write(header); err != nil {
		return err
	}

	rec := make([]string, s.signal.Cols()+1)
	for i, t := range s.time {
		rec[0] = strconv.FormatFloat(t, 'g', -1, 64)
		for j, v := range s.signal.RawRow(i) {
			rec[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}

		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}
