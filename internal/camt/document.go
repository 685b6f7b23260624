// Package camt maps the canonical statement onto an ISO 20022 camt.053
// bank-to-customer statement and renders it as XML or as a structurally
// identical JSON projection.
package camt

import "encoding/xml"

// Document is the camt.053 root. Every struct carries parallel xml and json
// tags so the two renderings stay isomorphic: a consumer can round-trip
// between them without losing or inventing fields.
type Document struct {
	XMLName       xml.Name      `xml:"Document" json:"-"`
	Xmlns         string        `xml:"xmlns,attr" json:"xmlns"`
	BkToCstmrStmt BkToCstmrStmt `xml:"BkToCstmrStmt" json:"BkToCstmrStmt"`
}

// Namespace is the camt.053 message namespace.
const Namespace = "urn:iso:std:iso:20022:tech:xsd:camt.053.001.02"

// BkToCstmrStmt is the bank-to-customer statement message body.
type BkToCstmrStmt struct {
	GrpHdr GrpHdr `xml:"GrpHdr" json:"GrpHdr"`
	Stmt   []Stmt `xml:"Stmt" json:"Stmt"`
}

// GrpHdr is the group header: message identity and creation time.
type GrpHdr struct {
	MsgID   string `xml:"MsgId" json:"MsgId"`
	CreDtTm string `xml:"CreDtTm" json:"CreDtTm"`
}

// Stmt is one statement block.
type Stmt struct {
	ID      string  `xml:"Id" json:"Id"`
	CreDtTm string  `xml:"CreDtTm" json:"CreDtTm"`
	FrToDt  *FrToDt `xml:"FrToDt,omitempty" json:"FrToDt,omitempty"`
	Acct    Acct    `xml:"Acct" json:"Acct"`
	Bal     []Bal   `xml:"Bal" json:"Bal"`
	Ntry    []Ntry  `xml:"Ntry" json:"Ntry"`
}

// FrToDt is the statement period.
type FrToDt struct {
	FrDtTm string `xml:"FrDtTm" json:"FrDtTm"`
	ToDtTm string `xml:"ToDtTm" json:"ToDtTm"`
}

// Acct identifies the account and its servicer.
type Acct struct {
	ID   AcctID `xml:"Id" json:"Id"`
	Ccy  string `xml:"Ccy,omitempty" json:"Ccy,omitempty"`
	Ownr *Ownr  `xml:"Ownr,omitempty" json:"Ownr,omitempty"`
	Svcr *Svcr  `xml:"Svcr,omitempty" json:"Svcr,omitempty"`
}

// AcctID wraps the account number. Nigerian NUBAN numbers are carried in
// the generic Othr identification, not IBAN.
type AcctID struct {
	Othr OthrID `xml:"Othr" json:"Othr"`
}

// OthrID is a generic account identification.
type OthrID struct {
	ID string `xml:"Id" json:"Id"`
}

// Ownr is the account owner.
type Ownr struct {
	Nm string `xml:"Nm" json:"Nm"`
}

// Svcr is the account servicing institution.
type Svcr struct {
	FinInstnID FinInstnID `xml:"FinInstnId" json:"FinInstnId"`
}

// FinInstnID names the financial institution.
type FinInstnID struct {
	Nm string `xml:"Nm" json:"Nm"`
}

// Bal is a balance block (opening or closing).
type Bal struct {
	Tp        BalTp  `xml:"Tp" json:"Tp"`
	Amt       Amt    `xml:"Amt" json:"Amt"`
	CdtDbtInd string `xml:"CdtDbtInd" json:"CdtDbtInd"`
	Dt        BalDt  `xml:"Dt" json:"Dt"`
}

// BalTp is the balance type wrapper. OPBD = opening booked, CLBD = closing
// booked.
type BalTp struct {
	CdOrPrtry CdOrPrtry `xml:"CdOrPrtry" json:"CdOrPrtry"`
}

// CdOrPrtry carries the balance type code.
type CdOrPrtry struct {
	Cd string `xml:"Cd" json:"Cd"`
}

// Amt is a currency-qualified amount.
type Amt struct {
	Value string `xml:",chardata" json:"Value"`
	Ccy   string `xml:"Ccy,attr" json:"Ccy"`
}

// BalDt is the balance date.
type BalDt struct {
	Dt string `xml:"Dt" json:"Dt"`
}

// Ntry is one statement entry. Entries appear in the same order as the
// statement's transactions; temporal order is a wire-format guarantee.
type Ntry struct {
	NtryRef      string  `xml:"NtryRef,omitempty" json:"NtryRef,omitempty"`
	Amt          Amt     `xml:"Amt" json:"Amt"`
	CdtDbtInd    string  `xml:"CdtDbtInd" json:"CdtDbtInd"`
	Sts          string  `xml:"Sts" json:"Sts"`
	BookgDt      BookgDt `xml:"BookgDt" json:"BookgDt"`
	AddtlNtryInf string  `xml:"AddtlNtryInf,omitempty" json:"AddtlNtryInf,omitempty"`
}

// BookgDt is the booking date of an entry.
type BookgDt struct {
	Dt string `xml:"Dt" json:"Dt"`
}
