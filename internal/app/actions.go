// Package app contains the application layer: the skill services, the
// intent router and the action applier.
package app

// Action names emitted by the skills. The narrator and the applier key on these.
const (
	ActDebtStatus         = "ada.finance.debtStatus"
	ActInvoiceCreated     = "ada.finance.invoiceCreated"
	ActPaymentLink        = "ada.finance.paymentLinkGenerated"
	ActPaymentProcessed   = "ada.finance.paymentProcessed"
	ActSettlementReport   = "ada.finance.settlementReport"
	ActPaymentPlan        = "ada.finance.proposePaymentPlan"
	ActVesselIntel        = "ada.marina.vesselIntel"
	ActVesselRegistered   = "ada.marina.vesselRegistered"
	ActFleetQuery         = "ada.marina.fleetQuery"
	ActBerthAssigned      = "ada.marina.berthAssigned"
	ActRadarScan          = "ada.marina.radarScan"
	ActTenderDispatched   = "ada.marina.tenderDispatched"
	ActTrafficStatus      = "ada.marina.updateTrafficStatus"
	ActLogMovement        = "ada.marina.logMovement"
	ActDepartureCleared   = "ada.marina.departureCleared"
	ActDepartureDenied    = "ada.marina.departureDenied"
	ActArrivalApproved    = "ada.marina.arrivalApproved"
	ActArrivalDiverted    = "ada.marina.arrivalDiverted"
	ActLegalConsultation  = "ada.legal.consultation"
	ActServiceScheduled   = "ada.technic.serviceScheduled"
	ActStatusReport       = "ada.technic.statusReport"
	ActJobCompleted       = "ada.technic.jobCompleted"
	ActCustomerInfo       = "ada.customer.info"
	ActCCTVReview         = "ada.security.cctvReview"
	ActSecurityDispatch   = "ada.security.dispatch"
	ActFlagVessel         = "ada.security.flagVessel"
	ActPassIssued         = "ada.passkit.passIssued"
	ActInfrastructure     = "ada.technic.infrastructureStatus"
	ActGridStatus         = "ada.technic.gridStatus"
	ActZeroWasteReport    = "ada.technic.zeroWasteReport"
	ActWaterQuality       = "ada.technic.waterQuality"
	ActHSEAudit           = "ada.technic.hseAudit"
)

// Trace nodes.
const (
	NodeOrchestrator = "ada.orchestrator"
	NodeFinance      = "ada.finance"
	NodeMarina       = "ada.marina"
	NodeLegal        = "ada.legal"
	NodeTechnic      = "ada.technic"
	NodeCustomer     = "ada.customer"
	NodeSecurity     = "ada.security"
	NodePasskit      = "ada.passkit"
)
