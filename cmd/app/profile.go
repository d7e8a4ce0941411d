package main

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"
)

var restoreFirst bool

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Print the local profile as JSON",
	RunE:  runProfile,
}

func init() {
	profileCmd.Flags().BoolVar(&restoreFirst, "restore", false, "replace the local profile with the mirror copy first")
}

type profileView struct {
	ClientID        string   `json:"client_id"`
	Coins           int      `json:"coins"`
	OwnedSkins      []string `json:"owned_skins"`
	EquippedSkin    string   `json:"equipped_skin,omitempty"`
	LastDailyAt     string   `json:"last_daily_at,omitempty"`
	CurrentWorld    int      `json:"current_world"`
	CurrentLevel    int      `json:"current_level"`
	WorldsCompleted int      `json:"worlds_completed"`
	UpdatedAt       string   `json:"updated_at,omitempty"`
	CanClaimDaily   bool     `json:"can_claim_daily"`
}

func runProfile(cmd *cobra.Command, args []string) error {
	store, closeStore, err := openStore(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	engine, pusher, closeMirror, err := newEngine(cfg, store, log)
	if err != nil {
		return err
	}
	defer closeMirror()
	defer pusher.Wait()

	if restoreFirst && !engine.Restore(cmd.Context()) {
		log.Warn("no mirror copy restored")
	}

	p := engine.Profile()
	view := profileView{
		ClientID:        p.ClientID,
		Coins:           p.Coins,
		OwnedSkins:      p.OwnedSkins,
		EquippedSkin:    p.EquippedSkin,
		LastDailyAt:     p.LastDailyClaim,
		CurrentWorld:    p.CurrentWorld,
		CurrentLevel:    p.CurrentLevel,
		WorldsCompleted: p.WorldsCompleted,
		CanClaimDaily:   engine.CanClaimDaily(),
	}
	if !p.UpdatedAt.IsZero() {
		view.UpdatedAt = p.UpdatedAt.Format(time.RFC3339)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(view)
}
