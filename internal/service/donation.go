package service

import (
	"github.com/wb-go/wbf/ginext"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"churchapi/internal/dto"
	"churchapi/internal/model"
	"churchapi/pkg/validator"
)

// CreateDonation records a giving transaction. A donation arriving already
// Successful gets its receipt number assigned before it is persisted.
func (s *Service) CreateDonation(c *ginext.Context) {
	var donation model.Donation
	if err := c.ShouldBindJSON(&donation); err != nil {
		dto.BadRequest(c, "Invalid JSON format")
		return
	}
	if donation.PaymentStatus == model.PaymentStatusSuccessful && donation.ReceiptNumber == "" {
		donation.ReceiptNumber = model.NewReceiptNumber(s.receiptPrefix)
	}

	stored, err := s.Donations.Create(c.Request.Context(), &donation)
	if err != nil {
		respondError(c, s.log, "Donation", "Failed to record donation", err)
		return
	}
	if stored.PaymentStatus == model.PaymentStatusSuccessful {
		s.publishEmailTask(dto.EmailTask{Kind: dto.EmailTaskReceipt, DonationID: stored.ID.Hex()})
	}
	dto.Created(c, "Donation recorded successfully", stored)
}

// GetAllDonations lists donations (admin view) and carries the running total
// over the Successful ones in the batch.
func (s *Service) GetAllDonations(c *ginext.Context) {
	opts := model.DonationQuery.Build(c.Request.URL.Query())
	donations, err := s.Donations.FindMany(c.Request.Context(), opts)
	if err != nil {
		respondError(c, s.log, "Donation", "Failed to retrieve donations", err)
		return
	}
	if donations == nil {
		donations = []model.Donation{}
	}
	c.JSON(200, dto.DonationListResponse{
		Success:     true,
		Count:       len(donations),
		TotalAmount: successfulTotal(donations),
		Data:        donations,
	})
}

// successfulTotal sums the amounts of Successful donations.
func successfulTotal(donations []model.Donation) float64 {
	var total float64
	for _, d := range donations {
		if d.PaymentStatus == model.PaymentStatusSuccessful {
			total += d.Amount
		}
	}
	return total
}

func (s *Service) GetDonationByID(c *ginext.Context) {
	handleGet(c, s.Donations, s.log, "Failed to retrieve donation")
}

func (s *Service) UpdateDonation(c *ginext.Context) {
	handleUpdate(c, s.Donations, s.log, "Donation updated successfully", "Failed to update donation")
}

func (s *Service) DeleteDonation(c *ginext.Context) {
	handleDelete(c, s.Donations, s.log, "Donation deleted successfully", "Failed to delete donation")
}

// VerifyPayment is the payment-gateway webhook. It trusts the caller-supplied
// reference: no gateway signature is checked before the donation flips to
// Successful. The receipt number is assigned exactly once, on the first
// transition.
func (s *Service) VerifyPayment(c *ginext.Context) {
	var req dto.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "Invalid JSON format")
		return
	}
	if err := validator.Validate(c.Request.Context(), req); err != nil {
		dto.BadRequest(c, "Payment reference is required")
		return
	}

	donation, err := s.Donations.FindOneBy(c.Request.Context(), bson.M{"paymentReference": req.Reference})
	if err != nil {
		respondError(c, s.log, "Donation", "Failed to verify payment", err)
		return
	}

	updated, err := s.Donations.Update(c.Request.Context(), donation.ID, s.verifyPatch(donation))
	if err != nil {
		respondError(c, s.log, "Donation", "Failed to verify payment", err)
		return
	}

	s.log.Info().
		Str("reference", req.Reference).
		Str("donation_id", updated.ID.Hex()).
		Msg("payment verified")

	s.publishEmailTask(dto.EmailTask{Kind: dto.EmailTaskReceipt, DonationID: updated.ID.Hex()})
	dto.Success(c, "Payment verified successfully", updated)
}

// verifyPatch builds the verification transition: the status flip, plus a
// receipt number only when the donation does not carry one yet. A second
// verify call finds the receipt already set and never reassigns it.
func (s *Service) verifyPatch(donation *model.Donation) bson.M {
	patch := bson.M{"paymentStatus": model.PaymentStatusSuccessful}
	if donation.ReceiptNumber == "" {
		patch["receiptNumber"] = model.NewReceiptNumber(s.receiptPrefix)
	}
	return patch
}

// buildDonationStatsPipeline groups Successful donations by purpose, sums and
// counts each group, and orders groups by summed amount descending.
func buildDonationStatsPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"paymentStatus": model.PaymentStatusSuccessful}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$purpose",
			"total": bson.M{"$sum": "$amount"},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"total": -1}}},
	}
}

// overallTotal is the grand total across all purpose groups.
func overallTotal(stats []dto.PurposeStat) float64 {
	var total float64
	for _, st := range stats {
		total += st.Total
	}
	return total
}

// GetDonationStats reports per-purpose totals over Successful donations plus
// the grand total. Deterministic given the stored data; no side effects.
func (s *Service) GetDonationStats(c *ginext.Context) {
	var stats []dto.PurposeStat
	if err := s.Donations.Aggregate(c.Request.Context(), buildDonationStatsPipeline(), &stats); err != nil {
		respondError(c, s.log, "Donation", "Failed to retrieve donation statistics", err)
		return
	}
	if stats == nil {
		stats = []dto.PurposeStat{}
	}
	c.JSON(200, dto.StatsResponse{
		Success:      true,
		OverallTotal: overallTotal(stats),
		Data:         stats,
	})
}
