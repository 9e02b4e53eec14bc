package spicetest

// Paths of the virtual HERA kernel set installed by InstallHera.
const (
	HeraLSK        = "hera/kernels/lsk/naif0012.tls"
	HeraPCK        = "hera/kernels/pck/pck00011.tpc"
	HeraSPK        = "hera/kernels/spk/hera_didymos_v01.bsp"
	HeraSCLK       = "hera/kernels/sclk/hera_fict_v01.tsc"
	HeraDSK        = "hera/kernels/dsk/dimorphos_g_v01.bds"
	HeraMetaKernel = "hera/kernels/mk/hera_study.tm"
)

// PCKText is a planetary constants kernel with radii for the bodies the
// fake knows about.
const PCKText = `KPL/PCK

Radii are in km.

\begindata
BODY10_RADII        = ( 696000.0 696000.0 696000.0 )
BODY399_RADII       = ( 6378.1366 6378.1366 6356.7519 )
BODY499_RADII       = ( 3396.19 3396.19 3376.20 )
BODY499_GM          = ( 4.282837362069909D+04 )
BODY920065803_RADII = ( 0.4095 0.4005 0.3035 )
BODY-658031_RADII   = ( 0.0895 0.0845 0.0605 )
\begintext
`

// MetaKernelText loads every kernel of the HERA set.
const MetaKernelText = `KPL/MK

\begindata
PATH_VALUES     = ( 'hera/kernels' )
PATH_SYMBOLS    = ( 'KERNELS' )
KERNELS_TO_LOAD = ( '$KERNELS/lsk/naif0012.tls'
                    '$KERNELS/pck/pck00011.tpc'
                    '$KERNELS/spk/hera_didymos_v01.bsp'
                    '$KERNELS/sclk/hera_fict_v01.tsc'
                    '$KERNELS/dsk/dimorphos_g_v01.bds' )
\begintext
`

// InstallHera registers the HERA kernel set on the virtual file system.
func (f *Fake) InstallHera() {
	f.AddFile(HeraLSK, "KPL/LSK\n")
	f.AddFile(HeraPCK, PCKText)
	f.AddFile(HeraSPK, "")
	f.AddFile(HeraSCLK, "KPL/SCLK\n")
	f.AddFile(HeraDSK, "")
	f.AddFile(HeraMetaKernel, MetaKernelText)
}

// NewHera returns a fake with the HERA kernel set installed but not loaded.
func NewHera() *Fake {
	f := New()
	f.InstallHera()
	return f
}
