package printing

// contactProps is shared by the companyInfo and customerInfo sections,
// which render the same line structure from different sources.
type contactProps struct {
	BaseStyleProps
	ShowName    bool
	ShowAddress bool
	ShowPhone   bool
	ShowEmail   bool
}

func normalizeContact(p Props) contactProps {
	base := normalizeBase(p)
	base.FontSize = p.Str("fontSize", "sm")
	return contactProps{
		BaseStyleProps: base,
		ShowName:       p.Bool("showName", true),
		ShowAddress:    p.Bool("showAddress", true),
		ShowPhone:      p.Bool("showPhone", true),
		ShowEmail:      p.Bool("showEmail", true),
	}
}

// contactLines renders the toggleable name/address/phone/email lines.
// Lines whose source value is empty are omitted entirely; there is no
// empty-line placeholder.
func contactLines(rc *renderContext, props contactProps, name, address, phone, email string) []Block {
	style := rc.style.SectionBaseStyle(props.BaseStyleProps)
	size := rc.style.FontSize(props.FontSize)

	var lines []Block
	if props.ShowName && name != "" {
		lines = append(lines, textIn(style, name, size+1, rc.style.FontWeight("bold")))
	}
	if props.ShowAddress && address != "" {
		lines = append(lines, textIn(style, address, size, 400))
	}
	if props.ShowPhone && phone != "" {
		lines = append(lines, textIn(style, phone, size, 400))
	}
	if props.ShowEmail && email != "" {
		lines = append(lines, textIn(style, email, size, 400))
	}
	return lines
}

// renderCompanyInfo prints the issuing company's contact lines
func renderCompanyInfo(rc *renderContext, p Props) []Block {
	props := normalizeContact(p)
	lines := contactLines(rc, props,
		rc.company.Name, rc.company.FullAddress(), rc.company.Phone, rc.company.Email)
	return sectionContainer(rc, props.BaseStyleProps, lines...)
}

// renderCustomerInfo prints the transaction customer's contact lines.
// Customers have no address, so that line never appears.
func renderCustomerInfo(rc *renderContext, p Props) []Block {
	props := normalizeContact(p)
	customer := CustomerInfo{}
	if rc.receipt.Customer != nil {
		customer = *rc.receipt.Customer
	}
	lines := contactLines(rc, props, customer.Name, "", customer.Phone, customer.Email)
	return sectionContainer(rc, props.BaseStyleProps, lines...)
}
