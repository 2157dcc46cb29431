package utils

import (
	"fmt"
	"log"

	"github.com/go-resty/resty/v2"

	"kwa/config"
)

const muxAPIBase = "https://api.mux.com"

// MuxAsset is the slice of the Mux asset object the academy stores
type MuxAsset struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	PlaybackIDs []struct {
		ID     string `json:"id"`
		Policy string `json:"policy"`
	} `json:"playback_ids"`
}

type muxAssetResponse struct {
	Data MuxAsset `json:"data"`
}

func muxClient() *resty.Client {
	return resty.New().
		SetBaseURL(muxAPIBase).
		SetBasicAuth(config.AppConfig.MuxTokenID, config.AppConfig.MuxTokenSecret).
		SetHeader("Content-Type", "application/json")
}

// CreateMuxAsset ingests an uploaded video URL into Mux and returns the
// asset id plus a public playback id. This is the primary action of a
// lesson video update, so failures surface to the caller.
func CreateMuxAsset(videoURL string) (assetID string, playbackID string, err error) {
	var result muxAssetResponse

	resp, err := muxClient().R().
		SetBody(map[string]interface{}{
			"input":           videoURL,
			"playback_policy": []string{"public"},
		}).
		SetResult(&result).
		Post("/video/v1/assets")
	if err != nil {
		return "", "", fmt.Errorf("failed to create video asset: %v", err)
	}
	if resp.IsError() {
		return "", "", fmt.Errorf("video host error: %s", resp.String())
	}

	if len(result.Data.PlaybackIDs) > 0 {
		playbackID = result.Data.PlaybackIDs[0].ID
	}
	return result.Data.ID, playbackID, nil
}

// DeleteMuxAsset removes a replaced asset. Cleanup is best-effort: a
// failure is logged and the caller carries on with the new asset.
func DeleteMuxAsset(assetID string) {
	if assetID == "" {
		return
	}
	resp, err := muxClient().R().Delete("/video/v1/assets/" + assetID)
	if err != nil {
		log.Printf("Error deleting video asset %s: %v", assetID, err)
		return
	}
	if resp.IsError() {
		log.Printf("Video host refused to delete asset %s: %s", assetID, resp.String())
	}
}
