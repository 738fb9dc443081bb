// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"bytes"
	"strings"
	"testing"

	"github.com/IanJ332/PyLibGen/pkg/types"
)

func outlierCollection() types.RecordCollection {
	return types.RecordCollection{Records: []types.Record{
		{ID: "1", Pages: 310, Filesize: 2 << 20},
		{ID: "2", Pages: 320, Filesize: 3 << 20},
		{ID: "3", Pages: 305, Filesize: 2 << 20},
		{ID: "4", Pages: 315, Filesize: 500 << 20},
		{ID: "5", Pages: 4000, Filesize: 3 << 20},
	}}
}

func TestOutliersIQR(t *testing.T) {
	got := Outliers(outlierCollection(), []string{"pages", "filesize"}, OutlierIQR, 1.5, nil)

	pages, ok := got["pages"]
	if !ok || len(pages) != 1 {
		t.Fatalf("pages outliers = %+v, want one", got["pages"])
	}
	if pages[0].ID != "5" || pages[0].Value != 4000 {
		t.Errorf("pages outlier = %+v, want record 5", pages[0])
	}

	filesize, ok := got["filesize"]
	if !ok || len(filesize) != 1 || filesize[0].ID != "4" {
		t.Errorf("filesize outliers = %+v, want record 4", got["filesize"])
	}
}

func TestOutliersZScore(t *testing.T) {
	coll := types.RecordCollection{Records: []types.Record{
		{ID: "1", Pages: 0},
		{ID: "2", Pages: 0},
		{ID: "3", Pages: 0},
		{ID: "4", Pages: 100},
	}}

	got := Outliers(coll, []string{"pages"}, OutlierZScore, 1.5, nil)

	pages := got["pages"]
	if len(pages) != 1 || pages[0].ID != "4" {
		t.Errorf("zscore outliers = %+v, want record 4 only", pages)
	}
}

func TestOutliersSkipsUnknownValues(t *testing.T) {
	coll := types.RecordCollection{Records: []types.Record{
		{ID: "1", Year: 2008},
		{ID: "2", Year: 2009},
		{ID: "3", Year: 2010},
		{ID: "4", Year: 1800},
		{ID: "5", Year: types.UnknownInt},
	}}

	got := Outliers(coll, []string{"year"}, OutlierIQR, 1.5, nil)

	for _, o := range got["year"] {
		if o.ID == "5" {
			t.Errorf("record with unknown year flagged: %+v", got["year"])
		}
	}
	if len(got["year"]) != 1 || got["year"][0].ID != "4" {
		t.Errorf("year outliers = %+v, want record 4", got["year"])
	}
}

func TestOutliersNoOutliers(t *testing.T) {
	coll := types.RecordCollection{Records: []types.Record{
		{ID: "1", Pages: 300},
		{ID: "2", Pages: 310},
		{ID: "3", Pages: 305},
	}}

	got := Outliers(coll, []string{"pages"}, OutlierIQR, 1.5, nil)
	if _, ok := got["pages"]; ok {
		t.Errorf("uniform distribution produced outliers: %+v", got["pages"])
	}
}

func TestOutliersSkipsNonNumericColumn(t *testing.T) {
	var warnings bytes.Buffer
	got := Outliers(outlierCollection(), []string{"title", "color"}, OutlierIQR, 1.5, &warnings)

	if len(got) != 0 {
		t.Errorf("non-numeric columns produced outliers: %+v", got)
	}
	if !strings.Contains(warnings.String(), `"title" not found or not numeric`) {
		t.Errorf("expected non-numeric warning, got %q", warnings.String())
	}
}

func TestOutliersUnknownMethod(t *testing.T) {
	var warnings bytes.Buffer
	got := Outliers(outlierCollection(), []string{"pages"}, "mad", 1.5, &warnings)

	if got != nil {
		t.Errorf("unknown method produced outliers: %+v", got)
	}
	if !strings.Contains(warnings.String(), `unknown outlier method "mad"`) {
		t.Errorf("expected unknown-method warning, got %q", warnings.String())
	}
}

func TestQuantile(t *testing.T) {
	values := []float64{10, 11, 12, 13, 100}

	if got := quantile(values, 0.25); got != 11 {
		t.Errorf("quantile(0.25) = %v, want 11", got)
	}
	if got := quantile(values, 0.75); got != 13 {
		t.Errorf("quantile(0.75) = %v, want 13", got)
	}
	if got := quantile(values, 1); got != 100 {
		t.Errorf("quantile(1) = %v, want 100", got)
	}
	if got := quantile(values, 0.5); got != 12 {
		t.Errorf("quantile(0.5) = %v, want 12", got)
	}
	// Interpolation between order statistics: pos 0.375*4 = 1.5.
	if got := quantile(values, 0.375); got != 11.5 {
		t.Errorf("quantile(0.375) = %v, want 11.5", got)
	}
}
