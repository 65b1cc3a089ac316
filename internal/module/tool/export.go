package tool

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/vira-library/catalog/internal/domain"
)

// ExportHeader is the fixed column order of the CSV export.
var ExportHeader = []string{
	"Name",
	"Description",
	"Link",
	"Category",
	"Sub Category",
	"Price Structure",
	"Price Details",
	"Average Rating",
	"Total Ratings",
	"Tags",
	"Is Favourite",
	"Comments",
	"Created At",
}

// tagDelimiter joins the tag sequence into a single export field.
const tagDelimiter = ", "

// exportDateLayout is the ISO date used for both the Created At column and
// the export filename.
const exportDateLayout = "2006-01-02"

// ExportFilename returns the attachment filename for an export taken at now.
func ExportFilename(now time.Time) string {
	return "ai-tools-" + now.Format(exportDateLayout) + ".csv"
}

// exportRecord flattens one enriched tool into the documented column order.
func exportRecord(v domain.ToolView) []string {
	favourite := "No"
	if v.IsFavourite {
		favourite = "Yes"
	}

	return []string{
		v.Name,
		v.Description,
		v.Link,
		v.CategoryDisplayName,
		v.SubCategory,
		v.PriceStructure,
		v.PriceDetails,
		fmt.Sprintf("%.1f", v.AverageRating),
		strconv.FormatInt(v.TotalRatings, 10),
		strings.Join(v.Tags, tagDelimiter),
		favourite,
		v.Comments,
		v.CreatedAt.Format(exportDateLayout),
	}
}

// WriteCSV writes the header and records to w with every field individually
// double-quote wrapped and rows newline-joined. encoding/csv quotes only
// when necessary, so quoting is done by hand here to keep the documented
// format stable.
func WriteCSV(w io.Writer, records [][]string) error {
	if err := writeCSVRow(w, ExportHeader); err != nil {
		return err
	}
	for _, record := range records {
		if err := writeCSVRow(w, record); err != nil {
			return err
		}
	}
	return nil
}

func writeCSVRow(w io.Writer, fields []string) error {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	_, err := io.WriteString(w, strings.Join(quoted, ",")+"\n")
	return err
}
