package mock

import (
	"context"

	"github.com/example/marina/internal/core/effects"
	"github.com/example/marina/internal/core/legal"
)

// Documents serves the built-in marina documents.
type Documents struct {
	docs map[string]string
}

// NewDocuments returns a store with the built-in documents.
func NewDocuments() *Documents {
	return &Documents{docs: map[string]string{
		legal.DocRegulations: regulationsDoc,
		legal.DocPrivacy:     privacyDoc,
		legal.DocGuide:       guideDoc,
		legal.DocNavigation:  navigationDoc,
	}}
}

// Document returns the named document.
func (d *Documents) Document(ctx context.Context, name string) (string, error) {
	doc, ok := d.docs[name]
	if !ok {
		return "", effects.NotFound("document %q", name)
	}
	return doc, nil
}

const regulationsDoc = `# WEST ISTANBUL MARINA OPERATION REGULATIONS

These regulations bind every berth holder, guest and contractor inside the marina.

## Article A.1 - Purpose
To provide a clean, safe and agreeable environment for yachts and their crews.

## Article E.1.10 - Speed
The speed limit inside the marina is 3 knots. Wash must be avoided at all times.

## Article E.2.1 - Swimming
Swimming, diving and fishing inside the marina basin are prohibited.

## Article F.4 - Contractors
Outside contractors must register with the Technical Office before working on board.

## Article H.3 - Overstay
The overstay penalty is 4 EUR per square metre per day beyond the contract end date.

## Article H.4 - Late payment
Late payment of marina fees accrues a penalty of 2 percent per month. Vessels with
outstanding fees may be refused departure clearance.
`

const privacyDoc = `# West Istanbul Marina KVKK / GDPR Data Protection Policy

This policy sets out how the marina complies with the Turkish Personal Data
Protection Law (KVKK) and the EU General Data Protection Regulation (GDPR).

## Article 1 - Introduction
The marina treats the protection of personal data as a core obligation.

## Article 2 - Purposes of processing
Personal data is processed to deliver services, keep the premises secure and meet legal obligations.

## Article 3 - CCTV
Camera footage is retained for 30 days and disclosed only to competent authorities.
`

const guideDoc = `# Guide to Turkish Waters

## Section 1 - General
COLREGs apply in all Turkish waters. Vessels must carry valid registration documents.

## Section 3 - Safety equipment
Life jackets, flares and a fire extinguisher are required on every vessel.

## Section 5 - Strait passage
Vessels transiting the Bosphorus must follow the Traffic Separation Scheme (TSS)
and report to Istanbul VTS.
`

const navigationDoc = `# COLREGS RULES

## Rule 5 - Look-out
Every vessel shall at all times maintain a proper look-out by sight and hearing.

## Rule 6 - Safe speed
Every vessel shall proceed at a safe speed so that she can avoid collision.

## Rule 15 - Crossing
When two power-driven vessels are crossing, the vessel which has the other on her
starboard side shall keep out of the way.
`
