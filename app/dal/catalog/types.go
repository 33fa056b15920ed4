package catalog

import (
	"encoding/json"
	"time"
)

type Category = string

const (
	CategoryProperty Category = "property"
	CategoryDownload Category = "download"
	CategoryBuild    Category = "build"
)

const (
	ActionAdd    = "add"
	ActionChange = "change"
	ActionRemove = "remove"
)

type (
	Product struct {
		Id              int64    `json:"id"`
		Title           string   `json:"title"`
		ImageLogo       string   `json:"image_logo"`
		Type            string   `json:"type"`
		CompSystems     []string `json:"comp_systems"`
		RankBestselling *int64   `json:"rank_bestselling"`
	}

	// ChangeRecord is one changelog entry. Category selects which of the payload
	// records is set; records written by older crawlers may carry none.
	ChangeRecord struct {
		Timestamp      time.Time       `json:"timestamp"`
		Action         string          `json:"action"`
		Category       Category        `json:"category"`
		PropertyRecord *PropertyChange `json:"property_record"`
		DownloadRecord *DownloadChange `json:"download_record"`
		BuildRecord    *BuildChange    `json:"build_record"`
	}

	PropertyChange struct {
		PropertyName string          `json:"property_name"`
		ValueOld     json.RawMessage `json:"value_old"`
		ValueNew     json.RawMessage `json:"value_new"`
	}

	DownloadChange struct {
		DlType        string            `json:"dl_type"`
		DlOldBonus    *BonusDownload    `json:"dl_old_bonus"`
		DlNewBonus    *BonusDownload    `json:"dl_new_bonus"`
		DlOldSoftware *SoftwareDownload `json:"dl_old_software"`
		DlNewSoftware *SoftwareDownload `json:"dl_new_software"`
	}

	BonusDownload struct {
		Id        int64  `json:"id"`
		Name      string `json:"name"`
		BonusType string `json:"bonus_type"`
		Count     int    `json:"count"`
		TotalSize int64  `json:"total_size"`
	}

	SoftwareDownload struct {
		Id        string `json:"id"`
		Name      string `json:"name"`
		Os        string `json:"os"`
		Language  string `json:"language"`
		Version   string `json:"version"`
		TotalSize int64  `json:"total_size"`
	}

	BuildChange struct {
		BuildOld *Build `json:"build_old"`
		BuildNew *Build `json:"build_new"`
	}

	Build struct {
		Id      int64      `json:"id"`
		Os      string     `json:"os"`
		Branch  string     `json:"branch"`
		Version string     `json:"version"`
		Public  bool       `json:"public"`
		Date    *time.Time `json:"date"`
	}
)
