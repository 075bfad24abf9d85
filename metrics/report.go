/*
 * MIT License
 *
 * Copyright (c) 2026 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package metrics

// Report is the JSON document served at /report.json.
type Report struct {
	DurationHistogram ReportHistogram `json:"durationHistogram"`
}

// ReportHistogram is the durationHistogram field of Report.
type ReportHistogram struct {
	Count       int64                     `json:"count"`
	Min         float64                   `json:"min"`
	Max         float64                   `json:"max"`
	Sum         float64                   `json:"sum"`
	Avg         float64                   `json:"avg"`
	StdDev      float64                   `json:"stdDev"`
	Percentiles []ReportPercentile        `json:"percentiles"`
}

// ReportPercentile is one entry of ReportHistogram.Percentiles.
type ReportPercentile struct {
	Percentile float64 `json:"percentile"`
	Value      float64 `json:"value"`
}

// BuildReport renders a Histogram snapshot into the wire JSON shape.
func BuildReport(h *Histogram) Report {
	snap := h.Snapshot()

	pcts := make([]ReportPercentile, 0, len(snap.Percentiles))
	for _, p := range snap.Percentiles {
		pcts = append(pcts, ReportPercentile{Percentile: p.Percentile, Value: p.Value})
	}

	return Report{
		DurationHistogram: ReportHistogram{
			Count:       snap.Count,
			Min:         snap.Min,
			Max:         snap.Max,
			Sum:         snap.Sum,
			Avg:         snap.Avg,
			StdDev:      snap.StdDev,
			Percentiles: pcts,
		},
	}
}
