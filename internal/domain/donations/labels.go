package donations

var statusLabels = map[Status]string{
	StatusPending:   "Pendiente",
	StatusApproved:  "Aprobado",
	StatusRejected:  "Rechazado",
	StatusCancelled: "Cancelado",
}

// Label is the admin-facing name of st. Values outside the known set get
// their own label instead of borrowing one.
func (st Status) Label() string {
	if l, ok := statusLabels[st]; ok {
		return l
	}
	return "Desconocido"
}

func (k Kind) Label() string {
	switch k {
	case KindOneTime:
		return "Única"
	case KindSubscription:
		return "Mensual"
	}
	return "Desconocido"
}
