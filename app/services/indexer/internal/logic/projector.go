package logic

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"GogDB/app/common/normalize"
	"GogDB/app/dal/catalog"
	"GogDB/app/dal/indexdb"

	"github.com/tidwall/pretty"
)

// ProjectProduct builds the products row. totalCount is the number of ids taking part
// in the rebuild; the best seller (rank 1) gets sale rank totalCount, unranked
// products get 0.
func ProjectProduct(prod *catalog.Product, totalCount int64) indexdb.Products {
	var saleRank int64
	if prod.RankBestselling != nil {
		saleRank = totalCount - *prod.RankBestselling + 1
	}

	return indexdb.Products{
		ProductId:   prod.Id,
		Title:       prod.Title,
		ImageLogo:   prod.ImageLogo,
		ProductType: prod.Type,
		CompSystems: normalize.CompressSystems(prod.CompSystems),
		SaleRank:    saleRank,
		SearchTitle: normalize.Search(prod.Title),
	}
}

// ProjectChangelog flattens rec into a changelog row. Category specific columns stay
// NULL for categories without indexed fields and for records missing their payload.
// The error is only about serializing the record.
func ProjectChangelog(prod *catalog.Product, rec *catalog.ChangeRecord) (indexdb.Changelog, error) {
	row := indexdb.Changelog{
		ProductId:    prod.Id,
		ProductTitle: prod.Title,
		Timestamp:    unixSeconds(rec.Timestamp),
		Action:       rec.Action,
		Category:     rec.Category,
	}

	switch rec.Category {
	case catalog.CategoryDownload:
		if dl := rec.DownloadRecord; dl != nil {
			row.DlType = nullString(dl.DlType)
			if dl.DlNewBonus != nil {
				row.BonusType = nullString(dl.DlNewBonus.BonusType)
			}
			// Old bonus wins when both are present, see BonusTypeConflict.
			if dl.DlOldBonus != nil {
				row.BonusType = nullString(dl.DlOldBonus.BonusType)
			}
		}
	case catalog.CategoryProperty:
		if prop := rec.PropertyRecord; prop != nil {
			row.PropertyName = nullString(prop.PropertyName)
		}
	}

	serialized, err := SerializeRecord(rec)
	if err != nil {
		return row, err
	}
	row.SerializedRecord = serialized
	return row, nil
}

// BonusTypeConflict reports a download change whose old and new bonus disagree on the
// bonus type. ProjectChangelog keeps the old one.
func BonusTypeConflict(rec *catalog.ChangeRecord) bool {
	if rec.Category != catalog.CategoryDownload || rec.DownloadRecord == nil {
		return false
	}
	dl := rec.DownloadRecord
	if dl.DlOldBonus == nil || dl.DlNewBonus == nil {
		return false
	}
	return dl.DlOldBonus.BonusType != dl.DlNewBonus.BonusType
}

// SerializeRecord renders rec as compact JSON with every object's keys sorted and
// non-ASCII text left unescaped.
func SerializeRecord(rec *catalog.ChangeRecord) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rec); err != nil {
		return "", fmt.Errorf("serialize change record: %w", err)
	}
	sorted := pretty.PrettyOptions(buf.Bytes(), &pretty.Options{SortKeys: true})
	return string(pretty.Ugly(sorted)), nil
}

func unixSeconds(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/1e9
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}
