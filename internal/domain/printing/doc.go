// Package printing contains the domain model for customizable receipt
// templates: the ReceiptTemplate aggregate, its ordered section list, and
// the closed enumerations that describe section types and layout variants.
package printing
