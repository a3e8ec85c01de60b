package core

type Services struct {
	Domain      *DomainService
	Certificate *CertificateService
	Setting     *SettingService
	Monitor     *MonitorService
}

func NewServices(db Store) *Services {
	return &Services{
		Domain:      NewDomainService(db),
		Certificate: NewCertificateService(db),
		Setting:     NewSettingService(db),
		Monitor:     NewMonitorService(db),
	}
}
