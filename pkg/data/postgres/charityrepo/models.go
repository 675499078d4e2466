package charityrepo

import "time"

// Campaign is a derived row created by a CampaignCreated event. TotalDonated
// is a running aggregate mutated by donation events; the row is never deleted
// by the indexer.
type Campaign struct {
	CampaignID       string    `json:"campaign_id"`
	CreatorAddress   string    `json:"creator_address"`
	Description      string    `json:"description"`
	GoalAmount       uint64    `json:"goal_amount"`
	EndTimestampSecs uint64    `json:"end_timestamp_secs"`
	TotalDonated     uint64    `json:"total_donated"`
	CreatedAt        time.Time `json:"created_at"`
}

// Donation is created once per DonationEvent and immutable thereafter. The
// event's transaction version doubles as the de-duplication key; the column
// name transaction_hash is kept from the live schema.
type Donation struct {
	TransactionVersion uint64    `json:"transaction_hash"`
	CampaignID         string    `json:"campaign_id"`
	Donor              string    `json:"donor"`
	Amount             uint64    `json:"amount"`
	HeartTokensMinted  uint64    `json:"heart_tokens_minted"`
	DonatedAt          time.Time `json:"donated_at"`
}

// FundsClaimed is one row of the append-only claim log.
type FundsClaimed struct {
	TransactionVersion uint64    `json:"transaction_hash"`
	CampaignID         string    `json:"campaign_id"`
	Creator            string    `json:"creator"`
	AmountClaimed      uint64    `json:"amount_claimed"`
	ClaimedAt          time.Time `json:"claimed_at"`
}
