package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"

	"stable-route.backend/internal/domain/entities"
	"stable-route.backend/internal/domain/repositories"
)

const attestationPollBatch = 50

// AttestationPollJob polls the attestation service for outbound burn
// messages and marks transfers attested once the signature is available.
// Only message passing protocols carry attestations; LayerZero and Stargate
// transfers settle without one.
type AttestationPollJob struct {
	transfers   repositories.TransferRepository
	events      repositories.TransferEventRepository
	client      *http.Client
	baseURL     string
	localDomain uint32
	interval    time.Duration
	stop        chan struct{}
}

func NewAttestationPollJob(transfers repositories.TransferRepository, events repositories.TransferEventRepository, baseURL string, localDomain uint32, interval time.Duration) *AttestationPollJob {
	return &AttestationPollJob{
		transfers:   transfers,
		events:      events,
		client:      &http.Client{Timeout: 10 * time.Second},
		baseURL:     strings.TrimRight(baseURL, "/"),
		localDomain: localDomain,
		interval:    interval,
		stop:        make(chan struct{}),
	}
}

func (j *AttestationPollJob) Start(ctx context.Context) {
	log.Println("🕐 Starting attestation poll job...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Attestation poll job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Attestation poll job stopped")
			return
		case <-ticker.C:
			j.poll(ctx)
		}
	}
}

func (j *AttestationPollJob) Stop() {
	close(j.stop)
}

func (j *AttestationPollJob) poll(ctx context.Context) {
	for _, protocol := range []entities.Protocol{entities.ProtocolCCTP, entities.ProtocolCCTPHooks} {
		pending, err := j.transfers.ListByStatus(ctx, entities.TransferStatusInitiated, protocol, attestationPollBatch)
		if err != nil {
			log.Printf("❌ Error fetching pending %s transfers: %v", protocol, err)
			continue
		}

		for _, transfer := range pending {
			if !transfer.SourceTxHash.Valid {
				continue
			}
			j.checkTransfer(ctx, transfer)
		}
	}
}

type attestationMessage struct {
	Status      string `json:"status"`
	Attestation string `json:"attestation"`
	EventNonce  string `json:"eventNonce"`
}

type attestationResponse struct {
	Messages []attestationMessage `json:"messages"`
}

func (j *AttestationPollJob) checkTransfer(ctx context.Context, transfer *entities.Transfer) {
	msg, err := j.fetchMessage(ctx, transfer.SourceTxHash.String)
	if err != nil {
		log.Printf("❌ Attestation lookup failed for %s: %v", transfer.TransferID, err)
		return
	}
	if msg == nil || !strings.EqualFold(msg.Status, "complete") {
		return
	}

	event := &entities.TransferEvent{
		TransferID: null.StringFrom(transfer.TransferID),
		EventType:  entities.TransferEventTypeAttested,
		Protocol:   transfer.Protocol,
		Token:      transfer.SourceToken,
		Amount:     transfer.Amount,
		TxHash:     transfer.SourceTxHash,
		Metadata: map[string]interface{}{
			"attestation": msg.Attestation,
			"eventNonce":  msg.EventNonce,
		},
	}

	if err := j.events.Create(ctx, event); err != nil {
		log.Printf("❌ Error recording attestation for %s: %v", transfer.TransferID, err)
		return
	}

	if err := j.transfers.UpdateStatus(ctx, transfer.TransferID, entities.TransferStatusAttested); err != nil {
		log.Printf("❌ Error marking %s attested: %v", transfer.TransferID, err)
		return
	}

	log.Printf("✅ Transfer %s attested", transfer.TransferID)
}

// fetchMessage queries the v2 messages endpoint by source transaction hash.
// A pending attestation returns either an empty list or a non-complete
// status; both are reported as nil without error.
func (j *AttestationPollJob) fetchMessage(ctx context.Context, txHash string) (*attestationMessage, error) {
	url := fmt.Sprintf("%s/v2/messages/%d?transactionHash=%s", j.baseURL, j.localDomain, txHash)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := j.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("attestation service returned %d", resp.StatusCode)
	}

	var body attestationResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	if len(body.Messages) == 0 {
		return nil, nil
	}
	return &body.Messages[0], nil
}
